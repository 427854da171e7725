/*
Package status owns file access and outcome reporting for patchrc.

	+-------------+
	|   Manager   |
	| (Storage)   |
	+------+------+
	       |
	+------+------+
	|   Outcome   |
	|  (UI/UX)    |
	+-------------+

🎯 Purpose:
- Reads target files and writes them back atomically
- Classifies the result of a patch (applied, not found, file missing, I/O error, not applicable)
- Formats one operator-facing line per file

⚡ Key Responsibilities:
- Temp file + rename writes that keep the original permission bits
- Distinguishing a missing target from any other I/O failure
- Glyph-prefixed status lines

🔍 Example:

	mgr := status.New(root)

	content, info, err := mgr.ReadFile(ctx, "src/app.jsx")
	...
	err = mgr.WriteFileAtomic(ctx, "src/app.jsx", patched, info.Mode().Perm())

	line := status.FormatFileOperation("src/app.jsx", "step-1", status.OutcomeApplied, "1 replacement")
*/
package status
