package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskpilot/internal/todo"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reminder *time.Time
			if at, _ := cmd.Flags().GetString("remind"); at != "" {
				t, err := todo.ParseReminder(at, time.Local)
				if err != nil {
					return fmt.Errorf("reminder must look like %q: %w", todo.ReminderLayout, err)
				}
				reminder = &t
			}
			return withStore(cmd, func(s *todo.Store) error {
				t, err := s.Add(strings.Join(args, " "), reminder)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %d\n", t.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringP("remind", "r", "", "reminder time ("+todo.ReminderLayout+")")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *todo.Store) error {
				v := todo.Project(s.Tasks())
				out := cmd.OutOrStdout()
				if v.Empty {
					fmt.Fprintf(out, "%s\n%s\n", v.Placeholder[0], v.Placeholder[1])
					return nil
				}
				for _, r := range v.Rows {
					box := "[ ]"
					if r.Completed {
						box = "[x]"
					}
					line := fmt.Sprintf("%s %d %s", box, r.ID, r.Text)
					if r.HasReminder {
						line += "  @ " + r.Reminder
					}
					fmt.Fprintln(out, line)
				}
				fmt.Fprintf(out, "\n%d total, %d completed, %d pending\n", v.Stats.Total, v.Stats.Completed, v.Stats.Pending)
				return nil
			})
		},
	}
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle a task's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, func(s *todo.Store) error {
				t, found, err := s.ToggleCompleted(id)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no task with id %d", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d completed=%t\n", t.ID, t.Completed)
				return nil
			})
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, func(s *todo.Store) error {
				return s.Delete(id)
			})
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *todo.Store) error {
				n, err := s.ClearCompleted()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %d\n", n)
				return nil
			})
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
