// Package sync copies files and directory trees for build scripts without
// silently clobbering data.
//
// # Conflict decisions
//
// CopyFile never overwrites an existing destination unless the caller says
// so. The decision is chosen per call:
//   - DecisionFail: return ErrDestinationExists (the default)
//   - DecisionSkip: leave the destination alone and report success
//   - DecisionOverwrite: replace the destination
//   - DecisionAsk: show a unified diff and ask "y" or "n"; identical files
//     are left alone without asking
//
//	engine := sync.NewEngine(fsutil.OS(), report.NewConsole(os.Stdout))
//	outcome, err := engine.CopyFile("templates/a.txt", "dist/a.txt",
//	    sync.WithDecision(sync.DecisionAsk))
//
// # Directory copies
//
// CopyDir is meant for populating fresh destinations. Any file that already
// exists in the destination tree stops the copy with a *TreeConflictError.
// The copy is not transactional: files copied before the conflict stay in
// place.
//
// Neither operation is safe for concurrent use against overlapping paths.
package sync
