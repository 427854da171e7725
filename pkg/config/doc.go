/*
Package config loads patch plans.

A plan is plain data: which files to patch, the regex-first / literal-fallback rules for
each, and optional post-patch checks. Keeping it out of code means a new fix is a new plan
file, not a new program.

🔍 Example (YAML):

	root: ../erp
	patches:
	  - name: client-po-loading
	    target: frontend/src/components/admin/SalesOrderForm/index.jsx
	    critical: true
	    rules:
	      - pattern: 'updateField\('clientEmail'.*\n'
	        literal: "updateField('clientEmail', poData.clientEmail || '');\n"
	        replacement: |
	          updateField('poNumber', poData.poNumber || '');
	          updateField('clientEmail', poData.clientEmail || '');
	    verify:
	      contains: ["poNumber"]
	      balanced: true

Supported formats are picked by extension: .yaml/.yml, .hcl, .json and .toml. A file named
.patchrc is tried as YAML and then as HCL.
*/
package config
