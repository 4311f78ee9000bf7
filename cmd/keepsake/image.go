// Image commands: add, list, delete.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keepsake/pkg/types"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage session images",
}

var (
	imageAddSession int
	imageAddFile    string
	imageAddDesc    string
)

var imageAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Upload an image to a session",
	Long: `Add validates the file, stores a size-bounded original plus a
thumbnail under the account's media directory, and records the metadata
against the session.

Example:
  keepsake image add --session 1 --file wedding.jpg --description "Our wedding day"`,
	RunE: runImageAdd,
}

var imageListSession int

var imageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored images",
	RunE:  runImageList,
}

var imageDeleteSession int

var imageDeleteCmd = &cobra.Command{
	Use:   "delete <image-id>",
	Short: "Delete an image and its stored files",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageDelete,
}

func init() {
	imageAddCmd.Flags().IntVar(&imageAddSession, "session", 0, "session id (required)")
	imageAddCmd.Flags().StringVar(&imageAddFile, "file", "", "image file to upload (required)")
	imageAddCmd.Flags().StringVar(&imageAddDesc, "description", "", "image description")
	_ = imageAddCmd.MarkFlagRequired("session")
	_ = imageAddCmd.MarkFlagRequired("file")

	imageListCmd.Flags().IntVar(&imageListSession, "session", -1, "limit to one session id")

	imageDeleteCmd.Flags().IntVar(&imageDeleteSession, "session", 0, "session id holding the image (required)")
	_ = imageDeleteCmd.MarkFlagRequired("session")

	imageCmd.AddCommand(imageAddCmd)
	imageCmd.AddCommand(imageListCmd)
	imageCmd.AddCommand(imageDeleteCmd)
}

func runImageAdd(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(imageAddFile)
	if err != nil {
		return fmt.Errorf("read image file: %w", err)
	}

	img, err := s.images.Upload(s.user, imageAddSession, filepath.Base(imageAddFile), data, imageAddDesc)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}

	if flagJSON {
		return printJSON(img)
	}
	fmt.Printf("Stored image %s (%dx%d) for session %d\n", img.ID, img.Width, img.Height, img.SessionID)
	return nil
}

func runImageList(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	var images []types.Image
	if imageListSession >= 0 {
		images, err = s.images.List(s.user, imageListSession)
	} else {
		images, err = s.images.ListAll(s.user)
	}
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}

	if flagJSON {
		return printJSON(images)
	}
	for _, img := range images {
		fmt.Printf("%-18s session %4d  %4dx%-4d  %s\n", img.ID, img.SessionID, img.Width, img.Height, img.OriginalFilename)
	}
	return nil
}

func runImageDelete(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	if err := s.images.Delete(s.user, imageDeleteSession, args[0]); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	fmt.Println("Deleted image", args[0])
	return nil
}
