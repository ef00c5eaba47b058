package webhooks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mixelka/chatadapter/internal/logging"
	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

// Registry is the remote webhook API the registrar reconciles against
type Registry interface {
	ListWebhooks(ctx context.Context) ([]models.WebhookRecord, error)
	CreateWebhook(ctx context.Context, req WebhookRequest) (*models.WebhookRecord, error)
	UpdateWebhook(ctx context.Context, id string, req WebhookRequest) (*models.WebhookRecord, error)
}

// Recorder stores reconcile outcomes for later inspection. Recording is
// best effort and never changes what the registrar does.
type Recorder interface {
	RecordEntry(ctx context.Context, entry *models.ReconcileEntry) error
}

// Options configures a Registrar
type Options struct {
	Platform string // labels validation errors, defaults to "webex"
	Secret   string // sent with every create and update
	DryRun   bool
	Logger   logging.Logger
	Recorder Recorder // optional
}

// Registrar reconciles a desired webhook set against a Registry
type Registrar struct {
	registry Registry
	platform string
	secret   string
	dryRun   bool
	logger   logging.Logger
	recorder Recorder
}

// Outcome is the result for one desired subscription
type Outcome struct {
	Name      string
	Operation models.ReconcileOperation
	WebhookID string // remote id; empty for a dry-run create or a failed create
	DryRun    bool
	Err       error
}

// Report collects the outcomes of one Reconcile call in declaration order
type Report struct {
	RunID    string
	DryRun   bool
	Outcomes []Outcome
}

// DescriptorError is a failed create or update for one subscription
type DescriptorError struct {
	Name      string
	Operation models.ReconcileOperation
	Err       error
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("%s webhook %q: %v", e.Operation, e.Name, e.Err)
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}

// Failed returns the outcomes that carry an error
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err joins every per-subscription failure, or returns nil when all succeeded
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, &DescriptorError{Name: o.Name, Operation: o.Operation, Err: o.Err})
	}
	return errors.Join(errs...)
}

// NewRegistrar creates a registrar for registry
func NewRegistrar(registry Registry, opts Options) *Registrar {
	r := &Registrar{
		registry: registry,
		platform: opts.Platform,
		secret:   opts.Secret,
		dryRun:   opts.DryRun,
		logger:   opts.Logger,
		recorder: opts.Recorder,
	}
	if r.platform == "" {
		r.platform = "webex"
	}
	if r.logger == nil {
		r.logger = logging.Nop()
	}
	return r
}

// Reconcile makes the registry match desired. The live list is fetched once;
// a listing failure aborts before anything is changed. Each subscription is
// then handled in order: an existing webhook with the same name is updated
// by its id, otherwise a new one is created. In dry-run mode nothing is sent
// and the intended operation is reported instead. A failed create or update
// is recorded on the report and the run moves on to the next subscription.
func (r *Registrar) Reconcile(ctx context.Context, desired []models.Subscription) (*Report, error) {
	if err := r.validate(desired); err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.NewString(), DryRun: r.dryRun}
	log := r.logger.Child("reconcile")

	existing, err := r.registry.ListWebhooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	log.Debug("fetched existing webhooks", "run_id", report.RunID, "count", len(existing))

	for _, sub := range desired {
		outcome := r.reconcileOne(ctx, sub, existing)
		report.Outcomes = append(report.Outcomes, outcome)
		r.record(ctx, report.RunID, outcome)

		if outcome.Err != nil {
			log.Error("webhook reconcile failed",
				"run_id", report.RunID,
				"name", outcome.Name,
				"operation", outcome.Operation,
				"error", outcome.Err,
			)
			continue
		}
		log.Info(successMessage(outcome),
			"run_id", report.RunID,
			"name", outcome.Name,
			"id", outcome.WebhookID,
			"target", sub.TargetURL,
		)
	}

	return report, nil
}

func (r *Registrar) reconcileOne(ctx context.Context, sub models.Subscription, existing []models.WebhookRecord) Outcome {
	req := WebhookRequest{
		Name:      sub.Name,
		TargetURL: sub.TargetURL,
		Resource:  sub.Resource,
		Event:     sub.Event,
		Secret:    r.secret,
		Filter:    sub.Filter,
	}

	match := findByName(existing, sub.Name)
	if match == nil {
		outcome := Outcome{Name: sub.Name, Operation: models.OperationCreate, DryRun: r.dryRun}
		if r.dryRun {
			return outcome
		}
		created, err := r.registry.CreateWebhook(ctx, req)
		if err != nil {
			outcome.Err = err
			return outcome
		}
		outcome.WebhookID = created.ID
		return outcome
	}

	outcome := Outcome{Name: sub.Name, Operation: models.OperationUpdate, WebhookID: match.ID, DryRun: r.dryRun}
	if r.dryRun {
		return outcome
	}
	if _, err := r.registry.UpdateWebhook(ctx, match.ID, req); err != nil {
		outcome.Err = err
	}
	return outcome
}

func (r *Registrar) validate(desired []models.Subscription) error {
	seen := make(map[string]struct{}, len(desired))
	for i, sub := range desired {
		if sub.Name == "" {
			return chaterr.Validation(r.platform, "webhook #%d has no name", i+1)
		}
		if _, dup := seen[sub.Name]; dup {
			return chaterr.Validation(r.platform, "webhook name %q is declared more than once", sub.Name)
		}
		seen[sub.Name] = struct{}{}
		if sub.TargetURL == "" {
			return chaterr.Validation(r.platform, "webhook %q has no target url", sub.Name)
		}
	}
	return nil
}

func (r *Registrar) record(ctx context.Context, runID string, outcome Outcome) {
	if r.recorder == nil {
		return
	}
	entry := &models.ReconcileEntry{
		RunID:     runID,
		Name:      outcome.Name,
		Operation: outcome.Operation,
		WebhookID: outcome.WebhookID,
		DryRun:    outcome.DryRun,
		CreatedAt: time.Now(),
	}
	if outcome.Err != nil {
		entry.Error = outcome.Err.Error()
	}
	if err := r.recorder.RecordEntry(ctx, entry); err != nil {
		r.logger.Warn("failed to record reconcile outcome", "name", outcome.Name, "error", err)
	}
}

// findByName returns the first record with the given name
func findByName(records []models.WebhookRecord, name string) *models.WebhookRecord {
	for i := range records {
		if records[i].Name == name {
			return &records[i]
		}
	}
	return nil
}

func successMessage(o Outcome) string {
	switch {
	case o.DryRun && o.Operation == models.OperationCreate:
		return "would create webhook"
	case o.DryRun:
		return "would update webhook"
	case o.Operation == models.OperationCreate:
		return "created webhook"
	default:
		return "updated webhook"
	}
}
