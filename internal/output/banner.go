package output

import (
	"fmt"
	"io"
	"strings"
)

const (
	colorCyan  = "\033[36m"
	colorWhite = "\033[97m"
	colorDim   = "\033[2m"
)

// Logo is the ASCII banner shared by the help output and the run banner.
const Logo = `  ┌─┐┌┬┐┌─┐┬┌─┌─┐┌─┐┬ ┬┌─┐┌─┐┬┌─
  └─┐││││ │├┴┐├┤ │  ├─┤├┤ │  ├┴┐
  └─┘┴ ┴└─┘┴ ┴└─┘└─┘┴ ┴└─┘└─┘┴ ┴`

// BannerInfo is what the run banner shows.
type BannerInfo struct {
	Version   string
	Target    string
	Catalog   string
	Endpoints int
	OutputDir string
	Filters   []string
}

// WriteBanner prints the logo and a short description of the run.
func WriteBanner(w io.Writer, info BannerInfo, color bool) {
	c, wh, d, rs := colorCyan, colorWhite, colorDim, colorReset
	if !color {
		c, wh, d, rs = "", "", "", ""
	}

	ver := info.Version
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}

	fmt.Fprintf(w, "\n%s%s%s %s%s%s\n", c, Logo, rs, d, ver, rs)
	fmt.Fprintf(w, "%s    API and dashboard smoke tests%s\n\n", wh, rs)

	fmt.Fprintf(w, "%s  ──────────────────────────────────────%s\n", d, rs)
	fmt.Fprintf(w, "  %sTarget:%s       %s%s%s\n", d, rs, wh, info.Target, rs)
	fmt.Fprintf(w, "  %sCatalog:%s      %s%s%s\n", d, rs, wh, info.Catalog, rs)
	fmt.Fprintf(w, "  %sEndpoints:%s    %s%d%s\n", d, rs, colorIf(color, colorYellow), info.Endpoints, rs)
	if len(info.Filters) > 0 {
		fmt.Fprintf(w, "  %sFilters:%s      %s%s%s\n", d, rs, wh, strings.Join(info.Filters, ", "), rs)
	}
	fmt.Fprintf(w, "  %sReports:%s      %s%s%s\n", d, rs, wh, info.OutputDir, rs)
	fmt.Fprintf(w, "%s  ──────────────────────────────────────%s\n\n", d, rs)
}

func colorIf(enabled bool, color string) string {
	if !enabled {
		return ""
	}
	return color
}
