package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/hr-tools/punchbook/pkg/models/domain"
	"github.com/hr-tools/punchbook/pkg/services/attendance"
)

func NewCheckInCmd(recorder attendance.Recorder, out io.Writer) *cobra.Command {
	return newRecordCmd(recorder, out, domain.ActionCheckIn, "Record a check-in for a user")
}

func NewCheckOutCmd(recorder attendance.Recorder, out io.Writer) *cobra.Command {
	return newRecordCmd(recorder, out, domain.ActionCheckOut, "Record a check-out for a user")
}

func newRecordCmd(recorder attendance.Recorder, out io.Writer, action domain.Action, short string) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   string(action),
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			message, err := recorder.Record(cmd.Context(), action, user, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, message)
			return err
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "user identifier")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
