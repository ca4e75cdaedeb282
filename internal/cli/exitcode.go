package cli

import (
	dodErrors "github.com/seanchatmangpt/uvmgr-sub002/internal/errors"
)

// ExitCode maps an error returned from Execute to a process exit code, per
// the CLI contract's per-operation exit code table (§6.1): a DoDError
// carries its own category-derived code; ErrReportFailed is the
// automate-complete "report.success == false" case (exit 1); any other
// error (cobra usage errors) also exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if dodErr := dodErrors.AsDoDError(err); dodErr != nil {
		return dodErr.ExitCode()
	}
	return 1
}
