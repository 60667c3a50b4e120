// Package prototool is the composition root of the meeting protocol generator.
//
// It connects the protocol workflow (package protokoll) with its adapters using the
// Hexagonal Architecture pattern: the council API as the Source, the Hugo content tree
// as the Repository, the system clipboard and the shared pad as export targets.
//
// Features:
//
//   - **Protocol skeletons**: Fetches the next meeting, its agenda, council members,
//     absences and upcoming events, then renders a Markdown document with frontmatter.
//   - **Attendance**: Reconciles absences against the roster and evaluates quorum.
//   - **Round trip**: Exports to the clipboard or the pad, and imports the edited
//     text back into the right place of the content tree.
//
// Usage:
//
//	gen, err := prototool.New(prototool.DefaultConfig(),
//		prototool.WithLogger(logger),
//	)
//
//	res, err := gen.Run(ctx, protokoll.Request{Mode: protokoll.ModeLocal, AsOf: today})
package prototool
