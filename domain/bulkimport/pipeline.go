package bulkimport

// Run executes the full reconciliation over one uploaded table.
//
// Stage order is fixed: precondition gate, header check (fail-fast), then the
// remaining validators run exhaustively so the caller can fix every problem
// in one pass. Diagnostic categories appear in this order: capacity and hour
// errors, internal overlaps, external overlaps, duplicate names, existing
// names, incomplete rows.
//
// The returned error covers only programmer mistakes in the ColumnSpec; user
// input problems are always expressed as diagnostics.
func Run(header []string, rows [][]Cell, spec ColumnSpec, opts Options) (Result, error) {
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}

	var result Result
	if opts.Precondition != nil {
		if msg := opts.Precondition(); msg != "" {
			result.Diagnostics.Append(Diagnostic{Category: CategoryPrecondition, Message: msg})
			return result, nil
		}
	}

	mapped, headerDiag := MapRows(header, rows, spec)
	if headerDiag != nil {
		result.Diagnostics.Append(*headerDiag)
		return result, nil
	}

	sessionRules := opts.Entity == EntitySessions &&
		spec.HasFields(FieldDate, FieldStartTime, FieldEndTime)

	if sessionRules {
		if spec.HasFields(FieldCapacity) {
			checkCapacity(mapped, opts, &result.Diagnostics)
		}
		checkHourOrder(mapped, &result.Diagnostics)
		checkInternalConflicts(mapped, &result.Diagnostics)
		checkExternalConflicts(mapped, opts, &result.Diagnostics)
	}
	if opts.ValidateUniqueNames && spec.HasFields(FieldName) {
		checkUniqueNames(mapped, opts.ExistingNames, &result.Diagnostics)
	}
	checkCompleteness(mapped, spec, &result.Diagnostics)

	if sessionRules {
		for _, row := range mapped {
			row[FieldDate] = NormalizeDate(row[FieldDate])
			row[FieldStartTime] = NormalizeTime(row[FieldStartTime])
			row[FieldEndTime] = NormalizeTime(row[FieldEndTime])
		}
	}
	result.Rows = mapped
	return result, nil
}
