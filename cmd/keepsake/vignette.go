// Vignette commands: add, list, show, publish, delete, feedback.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keepsake/internal/vignette"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

var vignetteCmd = &cobra.Command{
	Use:   "vignette",
	Short: "Manage freeform vignettes",
}

var (
	vignetteAddTitle   string
	vignetteAddContent string
	vignetteAddFile    string
	vignetteAddTheme   string
	vignetteAddMood    string
	vignetteAddPublish bool
	vignetteAddImages  []string
)

var vignetteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a vignette",
	Long: `Add creates a vignette in draft state unless --publish is given.
Content can come from --content or from a file produced by an external
importer via --file.

Example:
  keepsake vignette add --title "The Harbor" --content "We lived by the sea."
  keepsake vignette add --title "From my notes" --file imported.html --publish`,
	RunE: runVignetteAdd,
}

var vignetteListFilter string

var vignetteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vignettes",
	RunE:  runVignetteList,
}

var vignetteShowCmd = &cobra.Command{
	Use:   "show <vignette-id>",
	Short: "Show one vignette",
	Args:  cobra.ExactArgs(1),
	RunE:  runVignetteShow,
}

var vignettePublishTitle string

var vignettePublishCmd = &cobra.Command{
	Use:   "publish <vignette-id>",
	Short: "Publish a draft vignette",
	Args:  cobra.ExactArgs(1),
	RunE:  runVignettePublish,
}

var vignetteDeleteCmd = &cobra.Command{
	Use:   "delete <vignette-id>",
	Short: "Delete a vignette",
	Long: `Delete removes the vignette entry. Attached images are left in the
image store; remove them with "keepsake image delete" if wanted.`,
	Args: cobra.ExactArgs(1),
	RunE: runVignetteDelete,
}

var vignetteFeedbackFile string

var vignetteFeedbackCmd = &cobra.Command{
	Use:   "feedback <vignette-id>",
	Short: "Attach an AI-feedback record to a vignette",
	Long: `Feedback stores the JSON record returned by the external feedback
collaborator verbatim against the vignette. The record is never
inspected or modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runVignetteFeedback,
}

func init() {
	vignetteAddCmd.Flags().StringVar(&vignetteAddTitle, "title", "", "vignette title (required)")
	vignetteAddCmd.Flags().StringVar(&vignetteAddContent, "content", "", "rich-text content")
	vignetteAddCmd.Flags().StringVar(&vignetteAddFile, "file", "", "read content from file")
	vignetteAddCmd.Flags().StringVar(&vignetteAddTheme, "theme", "", "theme label")
	vignetteAddCmd.Flags().StringVar(&vignetteAddMood, "mood", "", "mood label")
	vignetteAddCmd.Flags().BoolVar(&vignetteAddPublish, "publish", false, "publish immediately instead of saving a draft")
	vignetteAddCmd.Flags().StringArrayVar(&vignetteAddImages, "image", nil, "attached image id (repeatable)")
	_ = vignetteAddCmd.MarkFlagRequired("title")

	vignetteListCmd.Flags().StringVar(&vignetteListFilter, "filter", "all", "all, published, or drafts")

	vignettePublishCmd.Flags().StringVar(&vignettePublishTitle, "title", "", "replace the title in the same update")

	vignetteFeedbackCmd.Flags().StringVar(&vignetteFeedbackFile, "file", "", "JSON file holding the feedback record (required)")
	_ = vignetteFeedbackCmd.MarkFlagRequired("file")

	vignetteCmd.AddCommand(vignetteAddCmd)
	vignetteCmd.AddCommand(vignetteListCmd)
	vignetteCmd.AddCommand(vignetteShowCmd)
	vignetteCmd.AddCommand(vignettePublishCmd)
	vignetteCmd.AddCommand(vignetteDeleteCmd)
	vignetteCmd.AddCommand(vignetteFeedbackCmd)
}

func runVignetteAdd(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	content := vignetteAddContent
	if vignetteAddFile != "" {
		data, err := os.ReadFile(vignetteAddFile)
		if err != nil {
			return fmt.Errorf("read content file: %w", err)
		}
		content = string(data)
	}

	v, err := s.vignettes.Create(s.user, vignetteAddTitle, content, vignetteAddTheme, vignetteAddMood, !vignetteAddPublish, vignetteAddImages)
	if err != nil {
		return fmt.Errorf("create vignette: %w", err)
	}

	if flagJSON {
		return printJSON(v)
	}
	state := "draft"
	if v.Published() {
		state = "published"
	}
	fmt.Printf("Created %s vignette %s (%d words)\n", state, v.ID, v.WordCount)
	return nil
}

func runVignetteList(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	filter := types.VignetteFilter(vignetteListFilter)
	switch filter {
	case types.VignettesAll, types.VignettesPublished, types.VignettesDrafts:
	default:
		return fmt.Errorf("unknown filter %q (use all, published, or drafts)", vignetteListFilter)
	}

	entries, err := s.vignettes.List(s.user, filter)
	if err != nil {
		return fmt.Errorf("list vignettes: %w", err)
	}

	if flagJSON {
		return printJSON(entries)
	}
	for _, v := range entries {
		state := "draft"
		if v.Published() {
			state = "published"
		}
		fmt.Printf("%s  %-9s %-30s %4d words  %s\n", v.ID, state, v.Title, v.WordCount, v.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runVignetteShow(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	v, err := s.vignettes.Get(s.user, args[0])
	if err != nil {
		return fmt.Errorf("load vignette: %w", err)
	}

	if flagJSON {
		return printJSON(v)
	}
	fmt.Printf("%s (%d words)\n\n%s\n", v.Title, v.WordCount, v.Content)
	return nil
}

func runVignettePublish(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	var fields vignette.Fields
	if vignettePublishTitle != "" {
		fields.Title = &vignettePublishTitle
	}

	v, ok, err := s.vignettes.Publish(s.user, args[0], fields)
	if err != nil {
		return fmt.Errorf("publish vignette: %w", err)
	}
	if !ok {
		return fmt.Errorf("publish vignette %s: %w", args[0], types.ErrNotFound)
	}
	fmt.Printf("Published %s at %s\n", v.ID, v.PublishedAt.Format("2006-01-02 15:04"))
	return nil
}

func runVignetteDelete(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	if err := s.vignettes.Delete(s.user, args[0]); err != nil {
		return fmt.Errorf("delete vignette: %w", err)
	}
	fmt.Println("Deleted vignette", args[0])
	return nil
}

func runVignetteFeedback(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(vignetteFeedbackFile)
	if err != nil {
		return fmt.Errorf("read feedback file: %w", err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("feedback file is not valid JSON")
	}

	ok, err := s.vignettes.SetFeedback(s.user, args[0], json.RawMessage(data))
	if err != nil {
		return fmt.Errorf("store feedback: %w", err)
	}
	if !ok {
		return fmt.Errorf("store feedback for %s: %w", args[0], types.ErrNotFound)
	}
	fmt.Println("Stored feedback on", args[0])
	return nil
}
