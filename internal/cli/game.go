package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("no user id: log in first or pass a user_id argument")

func newGameCmd() *cobra.Command {
	gameCmd := &cobra.Command{
		Use:   "game",
		Short: "Play rounds and read scores",
	}

	gameCmd.AddCommand(newQuestionCmd())
	gameCmd.AddCommand(newAnswerCmd())
	gameCmd.AddCommand(newScoreCmd())
	gameCmd.AddCommand(newLeaderboardCmd())

	return gameCmd
}

func newQuestionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "question",
		Short: "Request a new round",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result QuestionResult

			if err := client.Get("/api/game/question", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <question_id> <answer>",
		Short: "Submit the single answer for a round",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AnswerResult

			body := map[string]string{
				"question_id": args[0],
				"answer":      args[1],
			}
			if cfg.UserID != "" {
				body["user_id"] = cfg.UserID
			}

			if err := client.Post("/api/game/answer", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [user_id]",
		Short: "Show a user's highest score (defaults to the logged-in user)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := cfg.UserID
			if len(args) > 0 {
				userID = args[0]
			}
			if userID == "" {
				return errNotLoggedIn
			}

			var result ScoreResult
			if err := client.Get("/api/game/score/"+userID, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top highest scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LeaderboardResult

			path := "/api/game/leaderboard"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries to show")
	return cmd
}
