// Progress commands: show, record, reset.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track session completion",
}

var progressShowSession int

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show progress records",
	RunE:  runProgressShow,
}

var (
	recordSession  int
	recordQuestion int
	recordText     string
	recordBank     string
)

var progressRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record an answer to a session question",
	Long: `Record stores one answer against a session question and updates the
derived progress counts. The session's question total comes from the
bank given by --bank (or the custom bank for custom session ids).

Example:
  keepsake progress record --session 1 --question 0 --text "I was born in 1952 in a harbor town."`,
	RunE: runProgressRecord,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress and answers for the account",
	RunE:  runProgressReset,
}

func init() {
	progressShowCmd.Flags().IntVar(&progressShowSession, "session", -1, "show a single session id")

	progressRecordCmd.Flags().IntVar(&recordSession, "session", 0, "session id (required)")
	progressRecordCmd.Flags().IntVar(&recordQuestion, "question", 0, "question index, starting at 0")
	progressRecordCmd.Flags().StringVar(&recordText, "text", "", "answer text (required)")
	progressRecordCmd.Flags().StringVar(&recordBank, "bank", "legacy", "bank holding the session")
	_ = progressRecordCmd.MarkFlagRequired("session")
	_ = progressRecordCmd.MarkFlagRequired("text")

	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressRecordCmd)
	progressCmd.AddCommand(progressResetCmd)
}

func runProgressShow(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	if progressShowSession >= 0 {
		p, err := s.progress.Get(s.user, progressShowSession)
		if err != nil {
			return fmt.Errorf("get progress: %w", err)
		}
		if flagJSON {
			return printJSON(p)
		}
		fmt.Printf("session %d: %s, %d/%d answered (%.0f%%), %d words\n",
			p.SessionID, p.Status, p.QuestionsAnswered, p.TotalQuestions, p.Percent(), p.WordCount)
		return nil
	}

	records, err := s.progress.List(s.user)
	if err != nil {
		return fmt.Errorf("list progress: %w", err)
	}
	if flagJSON {
		return printJSON(records)
	}
	for _, p := range records {
		fmt.Printf("session %4d  %-12s %2d/%2d answered (%.0f%%)  %5d words\n",
			p.SessionID, p.Status, p.QuestionsAnswered, p.TotalQuestions, p.Percent(), p.WordCount)
	}
	return nil
}

func runProgressRecord(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	// Resolve the question total from the owning session.
	total := 0
	sessions, err := s.banks.AllSessions(s.user, recordBank)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}
	for _, sess := range sessions {
		if sess.ID == recordSession {
			total = len(sess.Questions)
			break
		}
	}

	p, err := s.progress.RecordAnswer(s.user, recordSession, recordQuestion, recordText, total)
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}

	if flagJSON {
		return printJSON(p)
	}
	fmt.Printf("session %d: %s, %d/%d answered, %d words\n",
		p.SessionID, p.Status, p.QuestionsAnswered, p.TotalQuestions, p.WordCount)
	return nil
}

func runProgressReset(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	if err := s.progress.Reset(s.user); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	fmt.Println("Progress and answers erased for", s.user)
	return nil
}
