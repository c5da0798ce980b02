package recipes

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a professional chef. You create recipes from the ingredients a user has available, grounded in real web recipe context, and you always reply with valid JSON and nothing else.`

// BuildPrompt renders the recipe-generation prompt from retrieved
// context and the user's request. A previous error, when present, is
// included so the model can correct its last reply.
func BuildPrompt(context string, numPeople int, ingredients, dietary string, previousErr error) string {
	var prompt strings.Builder

	fmt.Fprintf(&prompt, "Using the provided web recipe context, create 3-5 unique recipes for %d people using these ingredients: %s.\n", numPeople, ingredients)
	fmt.Fprintf(&prompt, "Ensure they adhere to these dietary restrictions: %s.\n", dietary)
	prompt.WriteString("For each recipe, include a list of any additional ingredients not provided by the user.\n")
	prompt.WriteString(`Return your answer as a JSON array where each item is an object with these keys:
"title" (string),
"ingredients" (list of strings),
"instructions" (list of step-by-step instructions),
"missing_ingredients" (list of strings, additional ingredients not in user input).
Only output valid JSON. Do not include any extra text.
`)

	if previousErr != nil {
		prompt.WriteString("\nYour previous reply could not be used because of this error:\n")
		prompt.WriteString(previousErr.Error())
		prompt.WriteString("\nPlease correct it in your response.\n")
	}

	prompt.WriteString("\nWeb recipe context:\n")
	prompt.WriteString(context)
	prompt.WriteString("\n")

	return prompt.String()
}

// GetSystemPrompt returns the system prompt for recipe generation.
func GetSystemPrompt() string {
	return systemPrompt
}
