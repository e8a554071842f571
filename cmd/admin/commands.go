package main

import (
	"context"
	"fmt"
	"labourdesk/backend/internal/auth"
	"labourdesk/backend/internal/complaint"
	"labourdesk/backend/internal/config"
	"labourdesk/backend/internal/models"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func rootContext() context.Context {
	return context.Background()
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStorage(false)
			if err != nil {
				return err
			}
			if err := s.AutoMigrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations complete.")
			return nil
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check database and Redis connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStorage(true)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(rootContext(), 5*time.Second)
			defer cancel()
			if err := s.Ping(ctx); err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func issueTokenCmd(a *auth.Authenticator) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "issue-token <staff_id>",
		Short: "Mint a staff bearer token for the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.IssueStaffToken(args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", config.StaffTokenTTL, "Token lifetime")
	return cmd
}

func listCmd() *cobra.Command {
	var (
		status string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List complaints, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := complaintService()
			if err != nil {
				return err
			}
			res, err := svc.List(rootContext(), complaint.ListFilter{Status: status, Limit: limit, Offset: offset})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "REFERENCE\tTYPE\tSTATUS\tPRIORITY\tASSIGNED\tCREATED")
			for _, c := range res.Complaints {
				assigned := "-"
				if c.AssignedTo != nil {
					assigned = *c.AssignedTo
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					c.ReferenceNumber, c.ComplaintType, c.Status, c.Priority, assigned,
					c.CreatedAt.Format(time.RFC3339))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d complaints\n", len(res.Complaints), res.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only show complaints with this status")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of complaints")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of complaints to skip")
	return cmd
}

func setStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <reference> <status>",
		Short: "Move a complaint along its lifecycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := complaintService()
			if err != nil {
				return err
			}
			c, err := svc.UpdateStatus(rootContext(), args[0], args[1])
			if err != nil {
				return err
			}
			printComplaint(cmd, c)
			return nil
		},
	}
}

func assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <reference> <staff_id>",
		Short: "Assign a complaint to a staff member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := complaintService()
			if err != nil {
				return err
			}
			c, err := svc.Assign(rootContext(), args[0], args[1])
			if err != nil {
				return err
			}
			printComplaint(cmd, c)
			return nil
		},
	}
}

func setPriorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-priority <reference> <priority>",
		Short: "Change a complaint's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := complaintService()
			if err != nil {
				return err
			}
			c, err := svc.SetPriority(rootContext(), args[0], args[1])
			if err != nil {
				return err
			}
			printComplaint(cmd, c)
			return nil
		},
	}
}

func printComplaint(cmd *cobra.Command, c *models.Complaint) {
	assigned := "-"
	if c.AssignedTo != nil {
		assigned = *c.AssignedTo
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Complaint %s: status=%s priority=%s assigned=%s\n",
		c.ReferenceNumber, c.Status, c.Priority, assigned)
}

