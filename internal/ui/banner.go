package ui

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pterm/pterm"
)

const bannerText = `
     ██╗ ██████╗ ██████╗     ██████╗ ███████╗████████╗███████╗ ██████╗████████╗ ██████╗ ██████╗
     ██║██╔═══██╗██╔══██╗    ██╔══██╗██╔════╝╚══██╔══╝██╔════╝██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗
     ██║██║   ██║██████╔╝    ██║  ██║█████╗     ██║   █████╗  ██║        ██║   ██║   ██║██████╔╝
██   ██║██║   ██║██╔══██╗    ██║  ██║██╔══╝     ██║   ██╔══╝  ██║        ██║   ██║   ██║██╔══██╗
╚█████╔╝╚██████╔╝██████╔╝    ██████╔╝███████╗   ██║   ███████╗╚██████╗   ██║   ╚██████╔╝██║  ██║
 ╚════╝  ╚═════╝ ╚═════╝     ╚═════╝ ╚══════╝   ╚═╝   ╚══════╝ ╚═════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝
`

// ColorizeText applies a random color gradient to the input text.
func ColorizeText(text string) string {
	startColor := pterm.NewRGB(uint8(rand.Intn(256)), uint8(rand.Intn(256)), uint8(rand.Intn(256)))
	endColor := pterm.NewRGB(uint8(rand.Intn(256)), uint8(rand.Intn(256)), uint8(rand.Intn(256)))

	runes := strings.Split(text, "")
	var colored strings.Builder
	for i, r := range runes {
		colored.WriteString(startColor.Fade(0, float32(len(runes)), float32(i), endColor).Sprint(r))
	}
	return colored.String()
}

// PrintBanner displays the application banner unless silenced.
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}
