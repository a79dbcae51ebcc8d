package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"thumbgrab/internal/extract"
	"thumbgrab/internal/share"
)

var (
	flagNoCopy bool
	flagDecode bool
)

var linkCmd = &cobra.Command{
	Use:   "link <url>",
	Short: "Print and copy the canonical share link for a video",
	Args:  cobra.ExactArgs(1),
	RunE:  linkRun,
}

func init() {
	linkCmd.Flags().BoolVar(&flagNoCopy, "no-copy", false, "Print the link without copying it to the clipboard")
	linkCmd.Flags().BoolVar(&flagDecode, "decode", false, "Decode a share link back to its video ID")
}

func linkRun(cmd *cobra.Command, args []string) error {
	if flagDecode {
		id, ok := share.Decode(args[0])
		if !ok {
			return fmt.Errorf("no video ID in %q", args[0])
		}
		fmt.Println(id)
		return nil
	}

	id, err := extract.VideoID(args[0])
	if err != nil {
		return fmt.Errorf("no video found in %q", args[0])
	}

	link := share.Encode(cfg.WatchBase, id)
	fmt.Println(link)

	if !flagNoCopy {
		if err := share.Copy(link); err != nil {
			// Clipboard failure is non-fatal; the link is already printed.
			fmt.Fprintf(os.Stderr, "Clipboard unavailable: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Copied to clipboard.")
		}
	}
	return nil
}
