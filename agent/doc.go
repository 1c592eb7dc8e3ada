// Package agent implements a thin orchestration layer over chat-completion
// backends: an Agent that assembles prompts, keeps bounded conversation
// history, dispatches tool calls, and logs each completed interaction.
//
// # Architecture
//
// The package is organized around these concepts:
//
//   - Agent: the turn orchestrator. One call to Process runs a full turn,
//     cycling between backend invocations and tool resolution until the
//     configured ExecutionPattern declares the response terminal.
//   - Store / MemoryManager / CacheManager: per-agent conversation history
//     (FIFO-bounded) and an unbounded key/value cache.
//   - Tool / Registry: named capabilities with declared parameter schemas,
//     dispatched by case-insensitive name through an explicit registration
//     map built at construction.
//   - ExecutionPattern: the pluggable termination and answer-extraction
//     policy. ToolCallPattern ends a turn when the model stops requesting
//     tools; ReActPattern ends it on a parsed final-answer marker.
//   - Sink: the interaction log boundary. MemorySink records in process
//     memory; ChannelSink streams entries to the host application.
//
// # Quick Start
//
//	client, _ := llmkit.NewClientFromEnv()
//	a, err := agent.New(client, "You are a helpful assistant",
//	    agent.WithTools(weatherTool),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	answer, err := a.Process(ctx, "What's the weather in Oslo?", "gpt-5.2")
//
// An Agent owns its Store exclusively and processes one turn at a time;
// callers running concurrent turns against one Agent must serialize them.
package agent
