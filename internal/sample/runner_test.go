package sample

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/go-kit/kit/log"
)

type fakeCredential struct{}

func (fakeCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "fake-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

type fakeSubscription struct {
	t         *testing.T
	providers []string
	groups    []string
}

func (f *fakeSubscription) Do(req *http.Request) (*http.Response, error) {
	respond := func(body string) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}

	path := req.URL.Path

	switch {
	case strings.HasSuffix(path, "/register"):
		segs := strings.Split(path, "/")
		f.providers = append(f.providers, segs[len(segs)-2])
		return respond(`{"namespace": "ns", "registrationState": "Registering"}`)

	case strings.Contains(path, "/resourcegroups/"):
		segs := strings.Split(path, "/")
		f.groups = append(f.groups, segs[len(segs)-1])
		return respond(`{"id": "rg-id", "name": "rg", "location": "westus"}`)

	default:
		f.t.Errorf("unexpected request %s %s", req.Method, req.URL)
		return respond(`{}`)
	}
}

func newTestRunner(t *testing.T) (*Runner, *fakeSubscription) {
	t.Helper()

	sub := &fakeSubscription{t: t}
	opts := &arm.ClientOptions{ClientOptions: policy.ClientOptions{Transport: sub}}

	r := NewRunner(log.NewNopLogger(), Config{
		SubscriptionID: "sub",
		ResourceGroup:  "azure-key-vault-samples",
		Location:       "westus",
	}, fakeCredential{}, opts)

	return r, sub
}

func TestExecutePreparesSubscriptionOnce(t *testing.T) {
	r, sub := newTestRunner(t)

	var ran []string
	step := func(name string) Step {
		return Step{Name: name, Run: func(context.Context) error {
			ran = append(ran, name)
			return nil
		}}
	}

	if err := r.Execute(context.Background(), step("first"), step("second")); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := r.Execute(context.Background(), step("third")); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(ran) != 3 {
		t.Errorf("expected 3 steps to run, got %v", ran)
	}

	if len(sub.providers) != 2 || sub.providers[0] != "Microsoft.KeyVault" || sub.providers[1] != "Microsoft.Storage" {
		t.Errorf("expected one registration per provider, got %v", sub.providers)
	}
	if len(sub.groups) != 1 || sub.groups[0] != "azure-key-vault-samples" {
		t.Errorf("expected one resource group write, got %v", sub.groups)
	}
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	r, _ := newTestRunner(t)

	boom := errors.New("boom")
	var reached bool

	err := r.Execute(context.Background(),
		Step{Name: "breaks", Run: func(context.Context) error { return boom }},
		Step{Name: "unreached", Run: func(context.Context) error { reached = true; return nil }},
	)

	if !errors.Is(err, boom) {
		t.Fatalf("expected the step error, got %v", err)
	}
	if !strings.Contains(err.Error(), "breaks") {
		t.Errorf("expected the step name in the error, got %v", err)
	}
	if reached {
		t.Error("expected execution to stop at the failing step")
	}
}
