// Package service dispatches tool invocations to providers.
//
// Each provider owns a service ID and the tools prefixed with it
// ("terminal.spawn_shell" belongs to "terminal"). The registry resolves the
// prefix, runs the tool and records call metrics. Both the websocket and
// REST transports go through it.
//
// Example Usage:
//
//	registry := service.NewRegistry(logger)
//	registry.Register(terminal.NewProvider(manager, hub))
//	result, err := registry.Execute(ctx, "terminal.spawn_shell", params, appCtx)
package service
