package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Inspect and download library books",
}

var bookGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one book record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}
		c, err := newCore()
		if err != nil {
			return err
		}
		book, err := c.client.GetBook(cmd.Context(), id)
		if err != nil {
			return errors.New(explainError(err))
		}
		fmt.Printf("%s\n", book.Title)
		if book.Author != "" {
			fmt.Printf("  author: %s\n", book.Author)
		}
		if book.FileFormat != "" {
			fmt.Printf("  format: %s\n", book.FileFormat)
		}
		if book.FileSize > 0 {
			fmt.Printf("  size:   %d bytes\n", book.FileSize)
		}
		return nil
	},
}

var bookDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download a book file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return errors.New("--out is required")
		}
		c, err := newCore()
		if err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := c.client.DownloadBook(cmd.Context(), id, f)
		if err != nil {
			return errors.New(explainError(err))
		}
		fmt.Printf("Wrote %d bytes to %s\n", n, out)
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Ask the service to re-index its library",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore()
		if err != nil {
			return err
		}
		count, err := c.client.ScanLibrary(cmd.Context())
		if err != nil {
			return errors.New(explainError(err))
		}
		fmt.Printf("Successfully indexed %d books.\n", count)
		return nil
	},
}

func init() {
	bookDownloadCmd.Flags().String("out", "", "destination file path")
	bookCmd.AddCommand(bookGetCmd, bookDownloadCmd)
	rootCmd.AddCommand(bookCmd, scanCmd)
}
