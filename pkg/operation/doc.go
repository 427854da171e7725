/*
Package operation runs a patch plan against the filesystem.

	+-------------+      +-------------+      +-------------+
	|    Plan     | ---> |  Operator   | ---> |   Report    |
	|  (targets)  |      | apply/check |      | (exit code) |
	+-------------+      |   /verify   |      +-------------+
	                     +------+------+
	                            |
	                     +------+------+
	                     |   Applier   |
	                     | (pkg/patch) |
	                     +-------------+

🎯 Purpose:
- Resolves the plan into targets and drives the patch Applier over them
- Reports one line per file as soon as its result is known
- Decides the exit status from the critical patch alone

🔄 Modes:
1. Apply: strictly sequential, in plan order, writes files
2. Check: previews every target without writing; previews run concurrently
3. Verify: runs only the post-patch checks of each patch

⚡ Failure handling:
Per-file failures are recorded in the Report and never stop the run. Only a
plan that cannot be resolved or a cancelled context returns an error.

🔍 Example:

	op, err := operation.New(operation.Options{
		Files:  status.New(plan.Root),
		Logger: log.FromContext(ctx),
	})
	if err != nil {
		return err
	}
	report, err := op.Apply(ctx, plan)
	if err != nil {
		return err
	}
	os.Exit(report.ExitCode())
*/
package operation
