package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

const banner = `
███████╗ ██████╗ ██████╗  ██████╗ ███████╗    ███████╗██████╗ ██████╗
██╔════╝██╔═══██╗██╔══██╗██╔════╝ ██╔════╝    ██╔════╝██╔══██╗██╔══██╗
█████╗  ██║   ██║██████╔╝██║  ███╗█████╗      ███████╗██║  ██║██║  ██║
██╔══╝  ██║   ██║██╔══██╗██║   ██║██╔══╝      ╚════██║██║  ██║██║  ██║
██║     ╚██████╔╝██║  ██║╚██████╔╝███████╗    ███████║██████╔╝██████╔╝
╚═╝      ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝    ╚══════╝╚═════╝ ╚═════╝
`

const tagline = "Specification-Driven Development for Atlassian Forge Apps"

// Blue to white, one color per banner line.
var bannerGradient = []string{"#4c6ef5", "#339af0", "#22b8cf", "#66d9e8", "#e9ecef", "#ffffff"}

// printBanner writes the colored banner and tagline to w. Colors degrade to
// plain text when w is not a color terminal.
func printBanner(w io.Writer) {
	out := termenv.NewOutput(w)

	lines := strings.Split(strings.Trim(banner, "\n"), "\n")
	for i, line := range lines {
		color := bannerGradient[i%len(bannerGradient)]
		_, _ = fmt.Fprintln(w, out.String(line).Foreground(out.Color(color)))
	}
	_, _ = fmt.Fprintln(w, out.String(tagline).Italic().Foreground(out.Color("#fcc419")))
	_, _ = fmt.Fprintln(w)
}
