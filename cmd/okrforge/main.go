package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"okrforge/internal/audit"
	"okrforge/internal/catalog"
	"okrforge/internal/objectives"
	"okrforge/internal/progress"
	"okrforge/internal/review"
	"okrforge/internal/wizard"
	"okrforge/internal/workspace"
)

const appName = "okrforge"

func main() {
	flag.String("workspace", "", "Path to workspace root")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s: OKR creation and tracking for marketing teams\n\n", appName)
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [command] [flags]\n\n", appName)
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  init      Initialize a new workspace")
		fmt.Fprintln(os.Stderr, "  template  Browse the template catalog")
		fmt.Fprintln(os.Stderr, "  wizard    Drive the objective creation wizard")
		fmt.Fprintln(os.Stderr, "  okr       Inspect persisted objectives")
		fmt.Fprintln(os.Stderr, "  metric    Record metric snapshots")
		fmt.Fprintln(os.Stderr, "  help      Show this help")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}

	workspacePath, remaining, err := extractWorkspaceFlag(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	args := remaining
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		flag.Usage()
		return
	}

	switch args[0] {
	case "init":
		err = runInit(args[1:], workspacePath)
	case "template":
		err = runTemplate(args[1:], workspacePath)
	case "wizard":
		err = runWizard(args[1:], workspacePath)
	case "okr":
		err = runOKR(args[1:], workspacePath)
	case "metric":
		err = runMetric(args[1:], workspacePath)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractWorkspaceFlag(args []string) (string, []string, error) {
	var workspacePath string
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--workspace" {
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("--workspace requires a value")
			}
			workspacePath = args[i+1]
			i++
			continue
		}
		if strings.HasPrefix(arg, "--workspace=") {
			workspacePath = strings.TrimPrefix(arg, "--workspace=")
			continue
		}
		remaining = append(remaining, arg)
	}
	return workspacePath, remaining, nil
}

func resolveWorkspace(workspacePath string) (*workspace.Workspace, error) {
	if strings.TrimSpace(workspacePath) == "" {
		return nil, fmt.Errorf("--workspace is required")
	}
	return workspace.Resolve(workspacePath)
}

func runInit(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(workspacePath) == "" {
		return fmt.Errorf("--workspace is required")
	}

	root, err := workspace.ResolveRoot(workspacePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create workspace root: %w", err)
	}
	ws, err := workspace.Resolve(root)
	if err != nil {
		return err
	}
	if err := ws.EnsureDirs(); err != nil {
		return err
	}

	fmt.Printf("Initialized workspace at %s\n", ws.Root)
	fmt.Printf("Add template catalog files under %s\n", ws.TemplatesDir)
	return nil
}

func runTemplate(args []string, workspacePath string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		return fmt.Errorf("%s template: missing subcommand (expected list)", appName)
	}
	switch args[0] {
	case "list":
		return runTemplateList(args[1:], workspacePath)
	default:
		return fmt.Errorf("%s template: unknown subcommand %q", appName, args[0])
	}
}

func runTemplateList(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("template list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	industry := fs.String("industry", "", "Filter templates by industry")
	asJSON := fs.Bool("json", false, "Emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	cat, err := catalog.LoadFromDir(ws.TemplatesDir)
	if err != nil {
		return err
	}

	templates := cat.Filter(*industry)
	if *asJSON {
		return printJSON(templates)
	}
	if len(templates) == 0 {
		fmt.Println("No templates match.")
		return nil
	}
	for _, tpl := range templates {
		fmt.Printf("%-24s p%d  %-10s target %.0f  %s\n", tpl.ID, tpl.Priority, tpl.Timeframe, tpl.SuggestedTarget, tpl.Title)
	}
	return nil
}

func runWizard(args []string, workspacePath string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		return fmt.Errorf("%s wizard: missing subcommand (expected status, context, select, deselect, customize, goto, review, finalize, or reset)", appName)
	}
	switch args[0] {
	case "status":
		return runWizardStatus(args[1:], workspacePath)
	case "context":
		return runWizardContext(args[1:], workspacePath)
	case "select":
		return runWizardSelect(args[1:], workspacePath)
	case "deselect":
		return runWizardDeselect(args[1:], workspacePath)
	case "customize":
		return runWizardCustomize(args[1:], workspacePath)
	case "goto":
		return runWizardGoto(args[1:], workspacePath)
	case "review":
		return runWizardReview(args[1:], workspacePath)
	case "finalize":
		return runWizardFinalize(args[1:], workspacePath)
	case "reset":
		return runWizardReset(args[1:], workspacePath)
	default:
		return fmt.Errorf("%s wizard: unknown subcommand %q", appName, args[0])
	}
}

// wizardStatus is the JSON shape reported by wizard status.
type wizardStatus struct {
	Step       wizard.Step    `json:"step"`
	Progress   int            `json:"progress"`
	CanAdvance bool           `json:"can_advance"`
	Industry   string         `json:"industry,omitempty"`
	Selected   []string       `json:"selected,omitempty"`
	Issues     []wizard.Issue `json:"issues,omitempty"`
	Drafts     []wizard.Draft `json:"drafts,omitempty"`
}

func runWizardStatus(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("wizard status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	state, err := wizard.Load(ws.WizardStatePath)
	if err != nil {
		return err
	}

	status := wizardStatus{
		Step:       state.Step,
		Progress:   state.Progress(),
		CanAdvance: state.CanAdvance(),
		Industry:   state.Brand.Industry,
		Selected:   state.SelectedIDs(),
		Issues:     state.Issues,
	}
	if state.Step == wizard.StepReview {
		status.Drafts = state.Drafts()
	}

	if *asJSON {
		return printJSON(status)
	}
	fmt.Printf("Step:        %s (%d%% complete)\n", status.Step, status.Progress)
	fmt.Printf("Can advance: %v\n", status.CanAdvance)
	if status.Industry != "" {
		fmt.Printf("Industry:    %s\n", status.Industry)
	}
	if len(status.Selected) > 0 {
		fmt.Printf("Selected:    %s\n", strings.Join(status.Selected, ", "))
	}
	for _, issue := range status.Issues {
		if issue.TemplateID != "" {
			fmt.Printf("Issue:       %s (%s): %s\n", issue.Field, issue.TemplateID, issue.Message)
			continue
		}
		fmt.Printf("Issue:       %s: %s\n", issue.Field, issue.Message)
	}
	return nil
}

func runWizardContext(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("wizard context", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	industry := fs.String("industry", "", "Brand industry (required to advance)")
	audience := fs.String("audience", "", "Primary audience")
	voice := fs.String("voice", "", "Brand voice")
	notes := fs.String("notes", "", "Free-form notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	state, err := wizard.Load(ws.WizardStatePath)
	if err != nil {
		return err
	}

	state.SetBrandContext(wizard.BrandContext{
		Industry: strings.TrimSpace(*industry),
		Audience: strings.TrimSpace(*audience),
		Voice:    strings.TrimSpace(*voice),
		Notes:    strings.TrimSpace(*notes),
	})
	return state.Save(ws.WizardStatePath)
}

func runWizardSelect(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("wizard select", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	all := fs.Bool("all", false, "Select every template applicable to the brand industry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	cat, err := catalog.LoadFromDir(ws.TemplatesDir)
	if err != nil {
		return err
	}
	state, err := wizard.Load(ws.WizardStatePath)
	if err != nil {
		return err
	}
	logger := audit.NewLogger(ws.AuditDBPath)

	if *all {
		templates := cat.Filter(state.Brand.Industry)
		state.SelectAll(templates)
		for _, tpl := range templates {
			logSelectEvent(logger, audit.EventTemplateSelected, tpl.ID)
		}
	} else {
		if fs.NArg() == 0 {
			return fmt.Errorf("template id is required (or use --all)")
		}
		for _, id := range fs.Args() {
			tpl, ok := cat.Lookup(id)
			if !ok {
				return fmt.Errorf("unknown template: %s", id)
			}
			state.Select(tpl)
			logSelectEvent(logger, audit.EventTemplateSelected, tpl.ID)
		}
	}

	return state.Save(ws.WizardStatePath)
}

func runWizardDeselect(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("wizard deselect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	all := fs.Bool("all", false, "Clear the entire selection")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	state, err := wizard.Load(ws.WizardStatePath)
	if err != nil {
		return err
	}
	logger := audit.NewLogger(ws.AuditDBPath)

	if *all {
		for _, id := range state.SelectedIDs() {
			logSelectEvent(logger, audit.EventTemplateDeselected, id)
		}
		state.DeselectAll()
	} else {
		if fs.NArg() == 0 {
			return fmt.Errorf("template id is required (or use --all)")
		}
		for _, id := range fs.Args() {
			state.Deselect(id)
			logSelectEvent(logger, audit.EventTemplateDeselected, id)
		}
	}

	return state.Save(ws.WizardStatePath)
}

func runWizardCustomize(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("wizard customize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	title := fs.String("title", "", "Override title")
	description := fs.String("description", "", "Override description")
	target := fs.Float64("target", 0, "Override target value")
	targetDate := fs.String("target-date", "", "Override target date (YYYY-MM-DD)")
	priority := fs.Int("priority", 0, "Override priority")
	granularity := fs.String("granularity", "", "Override granularity (daily, weekly, or monthly)")
	metricType := fs.String("metric-type", "", "Override metric type")
	platform := fs.String("platform", "", "Override platform")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one template id is required")
	}
	templateID := fs.Arg(0)

	var fields wizard.Customization
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			v := *title
			fields.Title = &v
		case "description":
			v := *description
			fields.Description = &v
		case "target":
			v := *target
			fields.TargetValue = &v
		case "priority":
			v := *priority
			fields.Priority = &v
		case "metric-type":
			v := *metricType
			fields.MetricType = &v
		case "platform":
			v := *platform
			fields.Platform = &v
		}
	})
	if *targetDate != "" {
		parsed, err := parseDate(*targetDate)
		if err != nil {
			return err
		}
		fields.TargetDate = &parsed
	}
	if *granularity != "" {
		g, err := parseGranularity(*granularity)
		if err != nil {
			return err
		}
		fields.Granularity = &g
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	state, err := wizard.Load(ws.WizardStatePath)
	if err != nil {
		return err
	}

	state.UpdateCustomization(templateID, fields)
	if err := state.Save(ws.WizardStatePath); err != nil {
		return err
	}

	for _, issue := range state.Issues {
		fmt.Fprintf(os.Stderr, "warning: %s (%s): %s\n", issue.Field, issue.TemplateID, issue.Message)
	}
	return nil
}

func runWizardGoto(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("wizard goto", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one step name is required")
	}
	target, err := wizard.ParseStep(fs.Arg(0))
	if err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	state, err := wizard.Load(ws.WizardStatePath)
	if err != nil {
		return err
	}
	if err := state.Goto(target); err != nil {
		return err
	}
	if err := state.Save(ws.WizardStatePath); err != nil {
		return err
	}
	fmt.Printf("Now at %s (%d%% complete)\n", state.Step, state.Progress())
	return nil
}

func runWizardReview(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("wizard review", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	state, err := wizard.Load(ws.WizardStatePath)
	if err != nil {
		return err
	}

	out, err := review.RenderChanges(state)
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Println("No customizations; drafts match template defaults.")
		return nil
	}
	fmt.Print(out)
	return nil
}

func runWizardFinalize(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("wizard finalize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Emit the created objectives as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	state, err := wizard.Load(ws.WizardStatePath)
	if err != nil {
		return err
	}

	drafts, err := state.Finalize()
	if err != nil {
		return err
	}

	store, err := objectives.Open(ws.ObjectivesDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.InsertDrafts(drafts, time.Now().UTC())
	if err != nil {
		return err
	}

	logger := audit.NewLogger(ws.AuditDBPath)
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	if err := logger.LogEvent("cli", audit.EventWizardCompleted, map[string]any{"objective_ids": ids}); err != nil {
		fmt.Fprintln(os.Stderr, "audit log failed:", err)
	}

	// A completed wizard is spent; the next session starts fresh.
	state.Reset()
	if err := state.Save(ws.WizardStatePath); err != nil {
		return err
	}

	if *asJSON {
		return printJSON(records)
	}
	fmt.Printf("Created %d objective(s):\n", len(records))
	for _, rec := range records {
		fmt.Printf("  %s  %s\n", rec.ID, rec.Title)
	}
	return nil
}

func runWizardReset(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("wizard reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	state, err := wizard.Load(ws.WizardStatePath)
	if err != nil {
		return err
	}
	state.Reset()
	if err := state.Save(ws.WizardStatePath); err != nil {
		return err
	}

	logger := audit.NewLogger(ws.AuditDBPath)
	if err := logger.LogEvent("cli", audit.EventWizardReset, map[string]any{}); err != nil {
		fmt.Fprintln(os.Stderr, "audit log failed:", err)
	}
	return nil
}

func runOKR(args []string, workspacePath string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		return fmt.Errorf("%s okr: missing subcommand (expected list or show)", appName)
	}
	switch args[0] {
	case "list":
		return runOKRList(args[1:], workspacePath)
	case "show":
		return runOKRShow(args[1:], workspacePath)
	default:
		return fmt.Errorf("%s okr: unknown subcommand %q", appName, args[0])
	}
}

func runOKRList(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("okr list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	store, err := objectives.Open(ws.ObjectivesDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(time.Now().UTC())
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(records)
	}
	if len(records) == 0 {
		fmt.Println("No objectives yet.")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s  %5.1f%%  %-9s  %3dd left  %s\n",
			rec.ID, rec.Derived.ProgressPercent, rec.Derived.Status, rec.Derived.DaysRemaining, rec.Title)
	}
	return nil
}

func runOKRShow(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("okr show", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one objective id is required")
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	store, err := objectives.Open(ws.ObjectivesDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now().UTC()
	rec, err := store.Get(fs.Arg(0), now)
	if err != nil {
		return err
	}
	snaps, err := store.Snapshots(rec.ID)
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(struct {
			Objective *objectives.Record    `json:"objective"`
			Snapshots []objectives.Snapshot `json:"snapshots"`
		}{rec, snaps})
	}

	fmt.Printf("%s\n", rec.Title)
	if rec.Description != "" {
		fmt.Printf("  %s\n", rec.Description)
	}
	fmt.Printf("  Progress:   %.1f%% (%s)\n", rec.Derived.ProgressPercent, rec.Derived.Status)
	fmt.Printf("  Current:    %.0f of %.0f %s\n", rec.CurrentValue, rec.TargetValue, rec.MetricType)
	fmt.Printf("  Days left:  %d\n", rec.Derived.DaysRemaining)
	fmt.Printf("  Confidence: %.2f\n", rec.Confidence)
	if len(snaps) > 1 {
		change := progress.ComputeChange(snaps[0].Value, snaps[1].Value)
		fmt.Printf("  Change:     %+.0f (%+.1f%%) since previous snapshot\n", change.Absolute, change.Percent)
	}
	for _, snap := range snaps {
		fmt.Printf("  %s  %12.0f  %s (confidence %.2f)\n",
			snap.RecordedAt.Format("2006-01-02"), snap.Value, snap.Source, snap.Confidence)
	}
	return nil
}

func runMetric(args []string, workspacePath string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		return fmt.Errorf("%s metric: missing subcommand (expected record)", appName)
	}
	switch args[0] {
	case "record":
		return runMetricRecord(args[1:], workspacePath)
	default:
		return fmt.Errorf("%s metric: unknown subcommand %q", appName, args[0])
	}
}

func runMetricRecord(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("metric record", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	objectiveID := fs.String("objective", "", "Objective id (required)")
	value := fs.Float64("value", 0, "Observed value (required)")
	source := fs.String("source", "manual", "Data source label")
	confidence := fs.Float64("confidence", 0.8, "Confidence level (0.0 to 1.0)")
	at := fs.String("at", "", "Observation date (YYYY-MM-DD, default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*objectiveID) == "" {
		return fmt.Errorf("--objective is required")
	}
	if *confidence < 0 || *confidence > 1 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0")
	}

	recordedAt := time.Now().UTC()
	if *at != "" {
		parsed, err := parseDate(*at)
		if err != nil {
			return err
		}
		recordedAt = parsed
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	store, err := objectives.Open(ws.ObjectivesDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.RecordSnapshot(*objectiveID, *value, *source, *confidence, recordedAt)
	if err != nil {
		return err
	}

	logger := audit.NewLogger(ws.AuditDBPath)
	payload := map[string]any{
		"objective_id": snap.ObjectiveID,
		"snapshot_id":  snap.ID,
		"value":        snap.Value,
		"source":       snap.Source,
	}
	if err := logger.LogEvent("cli", audit.EventSnapshotRecorded, payload); err != nil {
		fmt.Fprintln(os.Stderr, "audit log failed:", err)
	}

	rec, err := store.Get(snap.ObjectiveID, recordedAt)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %.0f for %s: now %.1f%% (%s)\n",
		snap.Value, rec.Title, rec.Derived.ProgressPercent, rec.Derived.Status)
	return nil
}

func logSelectEvent(logger *audit.Logger, eventType, templateID string) {
	if err := logger.LogEvent("cli", eventType, map[string]any{"template_id": templateID}); err != nil {
		fmt.Fprintln(os.Stderr, "audit log failed:", err)
	}
}

func parseDate(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC3339)", value)
	}
	return ts.UTC(), nil
}

func parseGranularity(value string) (catalog.Granularity, error) {
	switch catalog.Granularity(strings.TrimSpace(value)) {
	case catalog.GranularityDaily:
		return catalog.GranularityDaily, nil
	case catalog.GranularityWeekly:
		return catalog.GranularityWeekly, nil
	case catalog.GranularityMonthly:
		return catalog.GranularityMonthly, nil
	default:
		return "", fmt.Errorf("invalid granularity %q (expected daily, weekly, or monthly)", value)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
