package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/termhost/internal/shared/types"
)

var (
	// ErrInvalidToolID is returned for tool IDs without a service prefix.
	ErrInvalidToolID = errors.New("invalid tool ID format")
	// ErrServiceNotFound is returned when no provider owns the tool's prefix.
	ErrServiceNotFound = errors.New("service not found")
)

// Registry manages service discovery and execution
type Registry struct {
	services sync.Map
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// NewRegistry creates a new service registry
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Registry{logger: logger.Component("registry")}
}

// WithMetrics attaches a metrics collector
func (r *Registry) WithMetrics(metrics *monitoring.Metrics) *Registry {
	r.metrics = metrics
	return r
}

// WithTracer records a span per tool invocation
func (r *Registry) WithTracer(tracer *tracing.Tracer) *Registry {
	r.tracer = tracer
	return r
}

// Register adds a service provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.services.Store(def.ID, provider)
	r.logger.Info("Registered service", zap.String("service", def.ID), zap.Int("tools", len(def.Tools)))
	return nil
}

// Unregister removes a service provider
func (r *Registry) Unregister(serviceID string) {
	r.services.Delete(serviceID)
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns all registered services sorted by ID
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})

	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Execute runs a service tool. A tool ID is "<service>.<tool>".
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (result *types.Result, err error) {
	serviceID, _, ok := strings.Cut(toolID, ".")
	if !ok || serviceID == "" {
		err = fmt.Errorf("%w: %s", ErrInvalidToolID, toolID)
		return types.Failure(err), err
	}

	provider, ok := r.Get(serviceID)
	if !ok {
		err = fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
		return types.Failure(err), err
	}

	if r.tracer != nil {
		var span *tracing.Span
		span, ctx = r.tracer.StartSpan(ctx, toolID)
		span.SetTag("service", serviceID)
		defer func() {
			span.SetError(err)
			span.Finish()
			r.tracer.Submit(span)
		}()
	}

	timer := monitoring.NewTimer(r.metrics, serviceID, toolID)
	result, err = provider.Execute(ctx, toolID, params, appCtx)
	if err != nil {
		timer.Stop("error")
		r.logger.Debug("Tool failed", zap.String("tool", toolID), zap.Error(err))
		return types.Failure(err), err
	}

	timer.Stop("success")
	return result, nil
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}
