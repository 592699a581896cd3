// crm is a command line consumer of the CRM client core: login, browse
// contacts, leads, opportunities and activities, and watch the
// dashboard, all through the typed services.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vantagecrm/crm-client-go/internal/config"
	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
	"github.com/vantagecrm/crm-client-go/internal/infra/cache"
	"github.com/vantagecrm/crm-client-go/internal/infra/observability"
	"github.com/vantagecrm/crm-client-go/internal/infra/resilience"
	"github.com/vantagecrm/crm-client-go/internal/infra/tokenstore"
	"github.com/vantagecrm/crm-client-go/internal/service"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const usage = `usage: crm <command> [args]

commands:
  login <username> <password>   authenticate and persist the session
  logout                        clear the persisted session
  whoami                        show the current session
  contacts [search <query>]     list or search contacts
  leads [hot]                   list leads, or only high-score ones
  leads convert <id>            convert a qualified lead
  opportunities                 list open opportunities
  pipeline                      show the pipeline board by stage
  activities [overdue]          list today's or overdue activities
  dashboard                     show the dashboard summary
  health                        probe the backend health endpoints
`

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *observability.Metrics
	session *service.SessionController

	contacts      *service.ContactService
	leads         *service.LeadService
	opportunities *service.OpportunityService
	activities    *service.ActivityService
	dashboard     *service.DashboardService
	health        *service.HealthService

	// summaryCache short-circuits repeated dashboard fetches within
	// one TTL window when the CLI is driven by a watch loop.
	summaryCache *cache.Memory[domain.DashboardSummary]
	breaker      *gobreaker.CircuitBreaker
}

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	metrics := observability.NewMetrics()
	tokens := tokenstore.New(cfg.TokenFile, logger)

	a := &app{
		cfg:          cfg,
		logger:       logger,
		metrics:      metrics,
		summaryCache: cache.New[domain.DashboardSummary](cfg.CacheTTL),
		breaker:      resilience.NewCircuitBreaker("crm-api"),
	}
	defer a.summaryCache.Close()

	client := api.New(api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Tokens:  tokens,
		OnAuthFailure: func() {
			// The controller exists by the time any request runs.
			a.session.Invalidate()
			fmt.Fprintln(os.Stderr, "session expired, please run `crm login` again")
		},
		Metrics: metrics,
		Logger:  logger,
	})

	authSvc := service.NewAuthService(client, tokens, logger)
	a.session = service.NewSessionController(authSvc, tokens, logger)
	a.session.Init()

	a.contacts = service.NewContactService(client)
	a.leads = service.NewLeadService(client)
	a.opportunities = service.NewOpportunityService(client)
	a.activities = service.NewActivityService(client)
	a.dashboard = service.NewDashboardService(client)
	a.health = service.NewHealthService(client)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	snap := metrics.GetSnapshot()
	logger.Debug("request metrics",
		zap.Float64("total", snap.TotalRequests),
		zap.Float64("errors", snap.ErrorCount),
		zap.Float64("auth_failures", snap.AuthFailures),
	)
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		a.session.Logout(ctx)
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "contacts":
		return a.cmdContacts(ctx, args)
	case "leads":
		return a.cmdLeads(ctx, args)
	case "opportunities":
		return a.cmdOpportunities(ctx)
	case "pipeline":
		return a.cmdPipeline(ctx)
	case "activities":
		return a.cmdActivities(ctx, args)
	case "dashboard":
		return a.cmdDashboard(ctx)
	case "health":
		return a.cmdHealth(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: crm login <username> <password>")
	}
	if err := a.session.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	s := a.session.Session()
	fmt.Printf("logged in as %s\n", s.User.Username)
	return nil
}

func (a *app) cmdWhoami() error {
	s := a.session.Session()
	if !s.IsAuthenticated {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("user:    %s (id %d)\n", s.User.Username, s.User.ID)
	fmt.Printf("email:   %s\n", s.User.Email)
	fmt.Printf("tenant:  %d\n", s.User.TenantID)
	return nil
}

func (a *app) cmdContacts(ctx context.Context, args []string) error {
	var (
		page *domain.Paginated[domain.Contact]
		err  error
	)
	if len(args) >= 2 && args[0] == "search" {
		var hits []domain.Contact
		hits, err = a.contacts.Search(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		page = &domain.Paginated[domain.Contact]{Data: hits, Total: len(hits)}
	} else {
		page, err = a.contacts.List(ctx, domain.ContactListParams{Limit: 20})
		if err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tEMAIL")
	for _, c := range page.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.FullName, c.Company, c.Email)
	}
	w.Flush()
	fmt.Printf("%d of %d contacts\n", len(page.Data), page.Total)
	return nil
}

func (a *app) cmdLeads(ctx context.Context, args []string) error {
	if len(args) == 2 && args[0] == "convert" {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		conv, err := a.leads.Convert(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("converted: contact %d, opportunity %d\n", conv.ContactID, conv.OpportunityID)
		return nil
	}

	var leads []domain.Lead
	if len(args) > 0 && args[0] == "hot" {
		hot, err := a.leads.HighScore(ctx, 0)
		if err != nil {
			return err
		}
		leads = hot
	} else {
		page, err := a.leads.List(ctx, domain.LeadListParams{Limit: 20})
		if err != nil {
			return err
		}
		leads = page.Data
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tSTATUS\tSCORE\tVALUE")
	for _, l := range leads {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%.0f\n",
			l.ID, l.FullName, l.Company, l.Status, l.Score, l.EstimatedValue)
	}
	return w.Flush()
}

func (a *app) cmdOpportunities(ctx context.Context) error {
	page, err := a.opportunities.List(ctx, domain.OpportunityListParams{Limit: 20})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTAGE\tAMOUNT\tPROB")
	for _, o := range page.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.0f\t%d%%\n", o.ID, o.Name, o.Stage, o.Amount, o.Probability)
	}
	return w.Flush()
}

func (a *app) cmdPipeline(ctx context.Context) error {
	board, err := a.opportunities.Pipeline(ctx)
	if err != nil {
		return err
	}
	for _, stage := range domain.AllStages {
		opps := board[stage]
		var total float64
		for _, o := range opps {
			total += o.Amount
		}
		fmt.Printf("%-14s %3d deals  %12.0f\n", stage, len(opps), total)
	}
	return nil
}

func (a *app) cmdActivities(ctx context.Context, args []string) error {
	var (
		acts []domain.Activity
		err  error
	)
	if len(args) > 0 && args[0] == "overdue" {
		acts, err = a.activities.Overdue(ctx)
	} else {
		acts, err = a.activities.Today(ctx)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tDUE\tSTATUS")
	for _, act := range acts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", act.ID, act.Title, act.Type, act.DueDate, act.Status)
	}
	return w.Flush()
}

// cmdDashboard fans out the independent dashboard reads and renders one
// combined view. The summary itself is served from the consumer cache
// within its TTL.
func (a *app) cmdDashboard(ctx context.Context) error {
	var (
		summary domain.DashboardSummary
		metrics *domain.DashboardMetrics
		stats   *domain.OpportunityStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if cached, ok := a.summaryCache.Get("summary"); ok {
			a.metrics.IncrCacheHit("dashboard")
			summary = cached
			return nil
		}
		a.metrics.IncrCacheMiss("dashboard")
		s, err := a.dashboard.Summary(gctx)
		if err != nil {
			return err
		}
		a.summaryCache.Set("summary", *s)
		summary = *s
		return nil
	})
	g.Go(func() error {
		m, err := a.dashboard.Metrics(gctx)
		if err == nil {
			metrics = m
		}
		return err
	})
	g.Go(func() error {
		s, err := a.opportunities.Stats(gctx)
		if err == nil {
			stats = s
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("contacts:      %d recent\n", len(summary.Contacts.Recent))
	fmt.Printf("leads:         %d\n", summary.Leads.Count)
	fmt.Printf("opportunities: %d (%.0f total)\n", summary.Opportunities.Count, summary.Opportunities.TotalValue)
	fmt.Printf("activities:    %d overdue, %d due today\n", summary.Activities.Overdue, summary.Activities.DueToday)
	fmt.Printf("pipeline:      %.0f open, %.0f won\n", stats.PipelineValue, stats.WonValue)
	fmt.Printf("conversion:    %.1f%%\n", metrics.ConversionRate*100)
	return nil
}

// cmdHealth probes the backend through the circuit breaker, retrying
// transient failures with backoff.
func (a *app) cmdHealth(ctx context.Context) error {
	retryCfg := resilience.Config{
		MaxRetries:     a.cfg.MaxRetries,
		InitialBackoff: a.cfg.InitialBackoff,
	}

	var status *domain.HealthStatus
	err := resilience.RetryWithBackoff(ctx, retryCfg, func() error {
		out, err := a.breaker.Execute(func() (any, error) {
			return a.health.Check(ctx)
		})
		if err != nil {
			return err
		}
		status = out.(*domain.HealthStatus)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", status.Service, status.Status)

	services, err := a.health.Services(ctx)
	if err != nil {
		return err
	}
	for name, state := range services.Services {
		fmt.Printf("  %-10s %s\n", name, state)
	}
	if services.Status != "healthy" {
		fmt.Println("overall:", services.Status)
	}
	return nil
}

// parseID is shared by commands that take a numeric argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
