// clubdesk is the terminal host for the club intake wizard. It drives the
// same controller a web or mobile host would, reading answers from stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	_ "modernc.org/sqlite"

	"clubdesk/internal/adapters/cep"
	"clubdesk/internal/adapters/clubapi"
	"clubdesk/internal/adapters/email"
	"clubdesk/internal/adapters/media"
	"clubdesk/internal/adapters/storage"
	"clubdesk/internal/adapters/storage/draft"
	"clubdesk/internal/application/lookup"
	"clubdesk/internal/application/wizard"
	"clubdesk/internal/config"
	"clubdesk/internal/domain/brdoc"
	"clubdesk/internal/domain/flow"
	"clubdesk/internal/domain/intake"
)

var rootCmd = &cobra.Command{
	Use:   "clubdesk",
	Short: "Club intake wizard",
	Long: `clubdesk runs the club's member intake wizard from the terminal.
Drafts are saved locally as you type; submissions go to the club backend.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("CLUBDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().Bool("verbose", false, "debug logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func registerCommands() {
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(stepsCmd())
	rootCmd.AddCommand(draftCmd())
	rootCmd.AddCommand(cepCmd())
	rootCmd.AddCommand(searchCmd())
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildController wires the full dependency set from configuration.
func buildController(ctx context.Context, cfg config.Config, logger *slog.Logger) (*wizard.Controller, func(), error) {
	db, err := storage.Open(cfg.DraftDBPath)
	if err != nil {
		return nil, nil, err
	}

	var sender email.Sender = email.NewNoopSender()
	if cfg.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
	}

	c, err := wizard.New(ctx, wizard.Deps{
		Drafts:    draft.NewSQLiteStore(db),
		Backend:   clubapi.New(cfg.APIBaseURL),
		Uploader:  media.NewHostUploader(),
		Email:     sender,
		Logger:    logger,
		DraftName: cfg.DraftName,
	})
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	cleanup := func() {
		c.Close()
		db.Close()
	}
	return c, cleanup, nil
}

func runCmd() *cobra.Command {
	var dryRun bool
	var seed string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the intake wizard interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			logger := newLogger()

			c, cleanup, err := buildController(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			if seed != "" {
				values, err := url.ParseQuery(seed)
				if err != nil {
					return fmt.Errorf("bad --seed query: %w", err)
				}
				c.SeedFromQuery(values)
			}

			session := &wizardSession{
				controller: c,
				in:         bufio.NewScanner(os.Stdin),
				out:        os.Stdout,
				cep:        cep.New(cfg.CEPBaseURL),
				logger:     logger,
				dryRun:     dryRun,
			}
			return session.run(ctx)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate with the backend without persisting")
	cmd.Flags().StringVar(&seed, "seed", "", "deep-link query to preselect the flow, e.g. flowType=staff&staffChoice=team")
	return cmd
}

func stepsCmd() *cobra.Command {
	var flowType, choice, role string
	var renderHTML bool
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Show the step list for a flow selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := intake.FormDocument{FlowType: flowType, StaffChoice: choice, UserRole: role}
			if err := doc.Validate(); err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"#", "Step", "Label", "Fields"})
			for i, step := range flow.Resolve(&doc) {
				tw.AppendRow(table.Row{i + 1, step.ID, step.Label, len(step.Fields)})
			}
			tw.Render()

			if renderHTML {
				for _, step := range flow.Resolve(&doc) {
					html, err := flow.DescriptionHTML(step)
					if err != nil {
						return err
					}
					fmt.Printf("%s: %s", step.ID, html)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flowType, "flow", "", "flow type (staff|user)")
	cmd.Flags().StringVar(&choice, "choice", "", "staff choice (season|organization|team)")
	cmd.Flags().StringVar(&role, "role", "", "user role (atleta|treinador|coordenador|dirigente)")
	cmd.Flags().BoolVar(&renderHTML, "html", false, "render step descriptions as HTML")
	return cmd
}

func draftCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "draft", Short: "Inspect or discard the saved draft"}
	cmd.AddCommand(draftShowCmd())
	cmd.AddCommand(draftClearCmd())
	return cmd
}

func draftShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := storage.Open(cfg.DraftDBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			doc, ok, err := draft.NewSQLiteStore(db).Load(cmd.Context(), cfg.DraftName)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("no draft saved")
				return nil
			}
			printDocument(doc)
			return nil
		},
	}
}

func draftClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the saved draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := storage.Open(cfg.DraftDBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := draft.NewSQLiteStore(db).Clear(cmd.Context(), cfg.DraftName); err != nil {
				return err
			}
			fmt.Println("draft cleared")
			return nil
		},
	}
}

func cepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cep <code>",
		Short: "Look up an address by postal code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			addr, err := cep.New(cfg.CEPBaseURL).Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendRow(table.Row{"CEP", brdoc.FormatCEP(addr.CEP)})
			tw.AppendRow(table.Row{"Street", addr.Street})
			tw.AppendRow(table.Row{"Neighborhood", addr.Neighborhood})
			tw.AppendRow(table.Row{"City", addr.City})
			tw.AppendRow(table.Row{"State", addr.State})
			tw.Render()
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search registered persons by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			people, err := clubapi.New(cfg.APIBaseURL).SearchPersons(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Name", "Email"})
			for _, p := range people {
				tw.AppendRow(table.Row{p.ID, p.FullName, p.Email})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "max results")
	return cmd
}

// printDocument renders the filled fields of a document as a two-column table.
func printDocument(doc intake.FormDocument) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, path := range intake.KnownPaths() {
		value, err := doc.Field(path)
		if err != nil || value == "" {
			continue
		}
		if path == "person.media.profile_photo_url" && intake.IsInlineImage(value) {
			value = "(inline image)"
		}
		tw.AppendRow(table.Row{path, value})
	}
	tw.Render()
}

// wizardSession drives the controller from a line-based terminal.
type wizardSession struct {
	controller *wizard.Controller
	in         *bufio.Scanner
	out        *os.File
	cep        *cep.Client
	logger     *slog.Logger
	dryRun     bool
}

func (s *wizardSession) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Club intake wizard. Enter keeps the current value; 'back' returns a step.")

	for {
		step := s.controller.CurrentStep()
		steps := s.controller.Steps()
		fmt.Fprintf(s.out, "\n[%d/%d] %s\n", s.controller.StepIndex()+1, len(steps), step.Label)

		if step.ID == flow.StepReview {
			return s.review(ctx)
		}

		goBack, err := s.fillStep(ctx, step)
		if err != nil {
			return err
		}
		if goBack {
			s.controller.Retreat()
			continue
		}

		if err := s.controller.Advance(ctx); err != nil {
			if errors.Is(err, wizard.ErrStepInvalid) {
				s.printErrors(step)
				continue
			}
			return err
		}
	}
}

// fillStep prompts for every field of the step. Returns true when the person
// asked to go back.
func (s *wizardSession) fillStep(ctx context.Context, step flow.StepDescriptor) (bool, error) {
	doc := s.controller.Document()
	for _, path := range step.Fields {
		current, _ := doc.Field(path)
		if current != "" {
			fmt.Fprintf(s.out, "  %s [%s]: ", path, current)
		} else {
			fmt.Fprintf(s.out, "  %s: ", path)
		}
		if !s.in.Scan() {
			return false, s.in.Err()
		}
		answer := strings.TrimSpace(s.in.Text())
		if answer == "back" {
			return true, nil
		}
		if answer == "" {
			continue
		}
		answer = formatAnswer(path, answer)
		if err := s.controller.SetField(path, answer); err != nil {
			return false, err
		}
		if path == "person.address.cep" {
			s.autofillAddress(ctx, answer)
		}
	}
	return false, nil
}

// autofillAddress runs the postal-code lookup and writes the derived fields.
func (s *wizardSession) autofillAddress(ctx context.Context, code string) {
	a := lookup.NewAutofiller(lookup.AutofillerDeps{
		Lookup: s.cep,
		Set:    s.controller.SetField,
		Logger: s.logger,
	})
	a.Apply(ctx, code)
}

func (s *wizardSession) review(ctx context.Context) error {
	printDocument(s.controller.Document())

	if s.dryRun {
		if err := s.controller.DryRun(ctx); err != nil {
			s.printAllErrors()
			return err
		}
		fmt.Fprintln(s.out, "dry run passed, nothing was persisted")
		return nil
	}

	fmt.Fprint(s.out, "submit? [y/N/back]: ")
	if !s.in.Scan() {
		return s.in.Err()
	}
	switch strings.TrimSpace(strings.ToLower(s.in.Text())) {
	case "back":
		s.controller.Retreat()
		return s.run(ctx)
	case "y", "yes":
	default:
		fmt.Fprintln(s.out, "kept as draft")
		return nil
	}

	receipt, err := s.controller.Submit(ctx)
	if err != nil {
		s.printAllErrors()
		return err
	}
	fmt.Fprintf(s.out, "submitted, receipt %s (%s)\n", receipt.ID, receipt.Status)
	return nil
}

func (s *wizardSession) printErrors(step flow.StepDescriptor) {
	errs := s.controller.Errors()
	for _, path := range step.Fields {
		if msg, ok := errs[path]; ok {
			fmt.Fprintf(s.out, "  ! %s: %s\n", path, msg)
		}
	}
}

func (s *wizardSession) printAllErrors() {
	errs := s.controller.Errors()
	if msg, ok := errs[wizard.RootField]; ok {
		fmt.Fprintf(s.out, "  ! %s\n", msg)
	}
	for path, msg := range errs {
		if path == wizard.RootField {
			continue
		}
		fmt.Fprintf(s.out, "  ! %s: %s\n", path, msg)
	}
	if first := s.controller.FirstInvalidPath(); first != "" && first != wizard.RootField {
		fmt.Fprintf(s.out, "  fix %s first\n", first)
	}
}

// formatAnswer applies the display formatters so stored values match what
// the review screen shows.
func formatAnswer(path, answer string) string {
	switch path {
	case "person.cpf":
		return brdoc.FormatCPF(answer)
	case "person.rg":
		return brdoc.FormatRG(answer)
	case "person.address.cep":
		return brdoc.FormatCEP(answer)
	case "person.phone":
		return brdoc.FormatPhone(answer)
	default:
		return answer
	}
}
