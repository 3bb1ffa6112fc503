package sample

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// resource providers the walkthrough depends on.
var requiredProviders = []string{"Microsoft.KeyVault", "Microsoft.Storage"}

// Step is a named piece of the walkthrough.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes walkthrough steps, preparing the subscription once before
// the first step: the required resource providers are registered and the
// resource group is created.
type Runner struct {
	logger log.Logger
	cfg    Config
	cred   azcore.TokenCredential
	opts   *arm.ClientOptions

	setupDone bool
}

func NewRunner(logger log.Logger, c Config, credential azcore.TokenCredential, options *arm.ClientOptions) *Runner {
	return &Runner{
		logger: logger,
		cfg:    c,
		cred:   credential,
		opts:   options,
	}
}

// Execute runs the steps in order, stopping at the first failure.
func (r *Runner) Execute(ctx context.Context, steps ...Step) error {
	if err := r.setup(ctx); err != nil {
		return err
	}

	for _, step := range steps {
		level.Info(r.logger).Log("msg", "running step", "step", step.Name)

		if err := step.Run(ctx); err != nil {
			return fmt.Errorf("step %s, %w", step.Name, err)
		}

		level.Info(r.logger).Log("msg", "step finished", "step", step.Name)
	}

	return nil
}

func (r *Runner) setup(ctx context.Context) error {
	if r.setupDone {
		return nil
	}

	providers, err := armresources.NewProvidersClient(r.cfg.SubscriptionID, r.cred, r.opts)
	if err != nil {
		return fmt.Errorf("create providers client, %w", err)
	}

	for _, namespace := range requiredProviders {
		level.Debug(r.logger).Log("msg", "registering resource provider", "provider", namespace)

		if _, err := providers.Register(ctx, namespace, nil); err != nil {
			return fmt.Errorf("register resource provider %s, %w", namespace, err)
		}
	}

	groups, err := armresources.NewResourceGroupsClient(r.cfg.SubscriptionID, r.cred, r.opts)
	if err != nil {
		return fmt.Errorf("create resource groups client, %w", err)
	}

	level.Debug(r.logger).Log("msg", "ensuring resource group", "group", r.cfg.ResourceGroup, "location", r.cfg.Location)

	_, err = groups.CreateOrUpdate(ctx, r.cfg.ResourceGroup, armresources.ResourceGroup{
		Location: to.Ptr(r.cfg.Location),
	}, nil)
	if err != nil {
		return fmt.Errorf("ensure resource group %s, %w", r.cfg.ResourceGroup, err)
	}

	r.setupDone = true
	return nil
}
