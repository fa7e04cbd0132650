/*
Package operation runs patch plans against files on disk.

	+-------------+      +-------------+      +-------------+
	|    Load     | ---> |    Rules    | ---> |    Store    |
	| (document)  |      |   (text)    |      | (document)  |
	+-------------+      +-------------+      +-------------+

🎯 Purpose:
- Applies a plan's rules to one file (PatchOperation)
- Applies a plan's rules to every selected file under a root (RewriteOperation)
- Reports every rule's outcome through the console logger

🔄 Flow:
1. Load the whole file into memory
2. Apply each rule in order, collecting a tagged result per rule
3. Stop on a rule that did not match, unless the plan is lenient
4. Write the file back atomically, or print a diff on a dry run

⚡ Key Responsibilities:
- Turning silent misses into errors
- Skipping writes when nothing changed
- Bounded concurrency for tree rewrites

🔍 Example:

	op := operation.NewPatchOperation(operation.Options{Plan: p})
	err := operation.NewRunner(zerolog.Ctx(ctx), false, 0).Run(ctx, op)
*/
package operation
