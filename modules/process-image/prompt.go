package processimage

import "fmt"

const compositionTemplate = `You are a professional product photographer. Take this product image and create a new stunning e-commerce photo with the following background: "%s".

Instructions:
1. Extract the main product from the original image
2. Remove the original background completely
3. Place the product naturally on the requested background scene
4. Ensure professional lighting and shadows
5. Make it look like a high-quality e-commerce product photo

Generate only the final composite image.`

const analyzePrompt = "Briefly describe this product in 1-2 sentences. What is it and what are its key visual features?"

// DefaultProductDescription is returned when the model answers with no text.
const DefaultProductDescription = "Product image"

// BuildCompositionPrompt - 배경 설명을 포함한 합성 지시문 생성
func BuildCompositionPrompt(backgroundPrompt string) string {
	return fmt.Sprintf(compositionTemplate, backgroundPrompt)
}
