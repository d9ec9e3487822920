// Package azdo adapts the Azure DevOps REST clients to the application's
// organization directory and identity search ports.
package azdo

import (
	"context"
	"fmt"
	"sync"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/core"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/identity"
)

// Provider builds and caches Azure DevOps API clients for one organization.
// Clients are constructed lazily on first use so the process can start
// without reaching the service.
type Provider struct {
	connection *azuredevops.Connection

	mu             sync.Mutex
	coreClient     core.Client
	identityClient identity.Client
}

// NewProvider builds one provider from the organization URL and a personal
// access token.
func NewProvider(organizationURL, personalAccessToken string) *Provider {
	return &Provider{
		connection: azuredevops.NewPatConnection(organizationURL, personalAccessToken),
	}
}

// Core returns the cached core client, constructing it on first call.
// Construction failures are not cached so a later call can retry.
func (p *Provider) Core(ctx context.Context) (core.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.coreClient != nil {
		return p.coreClient, nil
	}
	client, err := core.NewClient(ctx, p.connection)
	if err != nil {
		return nil, fmt.Errorf("create core client: %w", err)
	}
	p.coreClient = client
	return client, nil
}

// Identity returns the cached identity client, constructing it on first call.
func (p *Provider) Identity(ctx context.Context) (identity.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.identityClient != nil {
		return p.identityClient, nil
	}
	client, err := identity.NewClient(ctx, p.connection)
	if err != nil {
		return nil, fmt.Errorf("create identity client: %w", err)
	}
	p.identityClient = client
	return client, nil
}
