// Session commands: the merged all-sessions view and custom sessions.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Work with sessions across banks",
}

var sessionListBank string

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the merged view of a bank's sessions plus custom sessions",
	RunE:  runSessionList,
}

var (
	sessionAddTitle     string
	sessionAddGuidance  string
	sessionAddQuestions []string
	sessionAddTarget    int
)

var sessionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a custom session outside any bank",
	Long: `Add creates a custom session. Custom sessions live in a reserved
per-user bank and take ids from 1000 up, so they never collide with
bank-local session ids in merged views.

Example:
  keepsake session add --title "The allotment" --question "Who taught you to grow things?"`,
	RunE: runSessionAdd,
}

func init() {
	sessionListCmd.Flags().StringVar(&sessionListBank, "bank", "legacy", "bank id to merge with custom sessions")

	sessionAddCmd.Flags().StringVar(&sessionAddTitle, "title", "", "session title (required)")
	sessionAddCmd.Flags().StringVar(&sessionAddGuidance, "guidance", "", "guidance note")
	sessionAddCmd.Flags().StringArrayVar(&sessionAddQuestions, "question", nil, "question (repeatable, at least one required)")
	sessionAddCmd.Flags().IntVar(&sessionAddTarget, "word-target", 0, "word target (default 500)")
	_ = sessionAddCmd.MarkFlagRequired("title")
	_ = sessionAddCmd.MarkFlagRequired("question")

	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionAddCmd)
}

func runSessionList(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	sessions, err := s.banks.AllSessions(s.user, sessionListBank)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if flagJSON {
		return printJSON(sessions)
	}
	for _, sess := range sessions {
		fmt.Printf("%4d  %-30s %2d questions  target %d\n", sess.ID, sess.Title, len(sess.Questions), sess.WordTarget)
	}
	return nil
}

func runSessionAdd(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	sess, err := s.banks.CreateCustomSession(s.user, sessionAddTitle, sessionAddGuidance, sessionAddQuestions, sessionAddTarget)
	if err != nil {
		return fmt.Errorf("add session: %w", err)
	}

	if flagJSON {
		return printJSON(sess)
	}
	fmt.Printf("Created session %d: %s\n", sess.ID, sess.Title)
	return nil
}
