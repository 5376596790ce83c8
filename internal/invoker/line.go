package invoker

import (
	"fmt"
	"strconv"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// writeLine prints e.g. "OK   [GET] /api/health - 200 (12ms)".
func (inv *Invoker) writeLine(res *Result) {
	label, color := "OK", colorGreen
	switch res.Status {
	case OutcomeFailure:
		label, color = "FAIL", colorYellow
	case OutcomeError:
		label, color = "ERR", colorRed
	}
	reset := colorReset
	if !inv.color {
		color, reset = "", ""
	}

	code := "ERROR"
	if res.StatusCode != 0 {
		code = strconv.Itoa(res.StatusCode)
	}

	fmt.Fprintf(inv.out, "%s%-4s%s [%s] %s - %s (%.0fms)\n",
		color, label, reset, res.Method, res.Endpoint, code, res.ResponseTime)
}
