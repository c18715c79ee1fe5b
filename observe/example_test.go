package observe_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/credops/observe"
)

func ExampleNewObserver() {
	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "credops",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
		Logging:     observe.LoggingConfig{Enabled: true, Level: "error"},
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() { _ = obs.Shutdown(ctx) }()

	fmt.Println("observer ready")
	// Output:
	// observer ready
}

func ExampleNewObserver_validation() {
	_, err := observe.NewObserver(context.Background(), observe.Config{})
	if errors.Is(err, observe.ErrMissingServiceName) {
		fmt.Println("missing service name")
	}
	// Output:
	// missing service name
}

func ExampleMiddleware_Run() {
	mw := observe.NopMiddleware()
	meta := observe.StageMeta{Stage: observe.StageResolve, InvocationID: "example"}

	var project string
	err := mw.Run(context.Background(), meta, func(ctx context.Context) error {
		project = "proj-123"
		return nil
	})

	fmt.Println(meta.SpanName(), project, err)
	// Output:
	// credops.resolve proj-123 <nil>
}
