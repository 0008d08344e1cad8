package tex2png_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/eea/tex2png"
)

// Example renders an inline expression with the default vector engine.
func Example() {
	conv, err := tex2png.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), tex2png.Input{
		Markup: `e^{i\pi} + 1 = 0`,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("width:", result.Width)
	// Output: width: 2000
}

// Example_markupError shows how to locate a problem in the input.
func Example_markupError() {
	conv, err := tex2png.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	_, err = conv.Convert(context.Background(), tex2png.Input{Markup: `x^{2`})
	if errors.Is(err, tex2png.ErrMarkup) {
		pos, _ := tex2png.MarkupPosition(err)
		fmt.Println("markup error at offset", pos)
	}
	// Output: markup error at offset 2
}

// Example_display uses display style with a white background.
func Example_display() {
	conv, err := tex2png.NewConverter(
		tex2png.WithBackground("#ffffff"),
		tex2png.WithPadding(0.25),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), tex2png.Input{
		Markup:  `\int_0^1 x\,dx = \frac{1}{2}`,
		Display: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Width, result.Height > 0)
	// Output: 2000 true
}
