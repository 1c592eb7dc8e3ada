// Package llmkit provides a provider-agnostic chat-completion client built
// on the gollm library (github.com/teilomillet/gollm).
//
// # Architecture
//
// The package is organized in three layers:
//
//   - Backend: the adapter interface every provider implementation satisfies,
//     plus the shared request/response types.
//   - Utilities: error classification (IsRetryable) and a retry policy that
//     can be attached to a client as middleware.
//   - Client: provider routing by name or model catalog, with a middleware
//     chain applied around every call.
//
// # Quick Start
//
// Using a client built from environment variables:
//
//	client, err := llmkit.NewClientFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	comp, err := client.ChatCompletion(ctx, llmkit.Request{
//	    Model:    "gpt-5.2",
//	    Messages: []llmkit.Message{llmkit.UserMessage("Hello")},
//	})
//	fmt.Println(comp.Content)
//
// Wiring a backend explicitly:
//
//	backend, _ := llmkit.NewGollmBackend("anthropic", os.Getenv("ANTHROPIC_API_KEY"))
//	client := llmkit.NewClient(llmkit.WithBackend("anthropic", backend))
//
// # Responses
//
// Every backend returns a Completion, a tagged variant that is either plain
// text or a structured response carrying tool-call requests. Callers switch
// on Completion.Kind rather than probing for field presence:
//
//	switch comp.Kind {
//	case llmkit.CompletionText:
//	    fmt.Println(comp.Content)
//	case llmkit.CompletionStructured:
//	    for _, call := range comp.ToolCalls {
//	        fmt.Println(call.Name)
//	    }
//	}
package llmkit
