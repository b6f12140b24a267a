package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/WailSalutem-Health-Care/patient-intake/internal/backend"
	"github.com/WailSalutem-Health-Care/patient-intake/internal/form"
	"github.com/WailSalutem-Health-Care/patient-intake/internal/logger"
	"github.com/WailSalutem-Health-Care/patient-intake/internal/telemetry"
)

// printNavigator is the CLI's router collaborator: "navigation" is printing
// the location the UI would move to.
type printNavigator struct{}

func (printNavigator) NavigateTo(path string) {
	fmt.Printf("→ %s\n", path)
}

func quickAddCmd() *cobra.Command {
	var (
		firstName   string
		lastName    string
		dateOfBirth string
		email       string
		phone       string
	)

	cmd := &cobra.Command{
		Use:   "quick-add",
		Short: "Create a patient with the minimal intake fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var metrics *telemetry.Metrics
			if cfg.Telemetry.Enabled {
				provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig("patient-intake"))
				if err == nil {
					defer func() {
						shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
						defer cancel()
						provider.Shutdown(shutdownCtx)
					}()
					metrics, _ = telemetry.InitMetrics()
				}
			}

			client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), logger.Logger)

			onCreated := func(created *backend.CreatedPatient) {
				fmt.Printf("Patient created: %s %s (id %s)\n", created.FirstName, created.LastName, created.ID)
			}

			controller := form.NewController(client, printNavigator{}, onCreated, metrics, logger.Logger)
			f := form.NewForm(controller)

			f.Update(form.FieldFirstName, firstName)
			f.Update(form.FieldLastName, lastName)
			f.Update(form.FieldDateOfBirth, dateOfBirth)
			f.Update(form.FieldEmail, email)
			f.Update(form.FieldPhone, phone)

			reader := bufio.NewReader(os.Stdin)
			promptMissing(reader, f)

			if age, ok := f.Age(); ok {
				fmt.Printf("Age: %d\n", age)
			}

			controller.Submit(ctx, f.Fields())
			controller.Wait()

			if controller.State() != form.StateSucceeded {
				return fmt.Errorf("%s", controller.ErrorMessage())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "patient first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "patient last name")
	cmd.Flags().StringVar(&dateOfBirth, "dob", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&email, "email", "", "patient email")
	cmd.Flags().StringVar(&phone, "phone", "", "patient phone (optional)")

	return cmd
}

// promptMissing asks for any required field not supplied by flags. Each
// answer flows through Form.Update like a keystroke would.
func promptMissing(reader *bufio.Reader, f *form.Form) {
	prompts := []struct {
		field form.Field
		label string
	}{
		{form.FieldFirstName, "First name"},
		{form.FieldLastName, "Last name"},
		{form.FieldDateOfBirth, "Date of birth (YYYY-MM-DD)"},
		{form.FieldEmail, "Email"},
	}

	fields := f.Fields()
	current := map[form.Field]string{
		form.FieldFirstName:   fields.FirstName,
		form.FieldLastName:    fields.LastName,
		form.FieldDateOfBirth: fields.DateOfBirth,
		form.FieldEmail:       fields.Email,
	}

	for _, p := range prompts {
		if strings.TrimSpace(current[p.field]) != "" {
			continue
		}
		fmt.Printf("%s: ", p.label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		f.Update(p.field, strings.TrimSpace(line))
	}
}
