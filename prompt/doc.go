// Package prompt builds structured prompts and per-turn message sequences.
//
// A Formatter assembles named sections (role, task, guide, output format,
// examples) into one prompt string in a fixed order, wrapped in a markdown,
// XML, or plain style. A Manager owns a pre-rendered system message and
// produces the full message sequence for one turn: system prefix, prior
// history verbatim, then the rendered user input.
//
// Both layers substitute {variable} placeholders from a supplied mapping and
// fail hard with MissingVariableError when a placeholder has no value.
// Placeholders are identifier-shaped ({city}, {user_name}), so literal JSON
// braces in prompt text are never treated as placeholders.
package prompt
