package llm

import (
	"fmt"
	"strings"
)

// ClassificationPrompt asks the model to assign a category with a confidence
// score, reasoning step by step over few-shot examples. The response must end
// with "Category:" and "Confidence:" label lines.
func ClassificationPrompt(text string, categories []string) string {
	categoriesStr := "no existing categories"
	if len(categories) > 0 {
		categoriesStr = strings.Join(categories, ", ")
	}

	return fmt.Sprintf(`Your task is to classify a message text into one of the existing categories or propose a new one.

Existing categories: %s

Text to classify:
%s

Think step by step:
1. Analyze the main topic of the text
2. Identify the key words and context
3. Compare against the existing categories
4. Pick the best matching category or propose a new one

Classification examples:

Example 1:
Text: "The new iPhone 15 ships with an improved camera and the A17 processor"
Analysis: A technology product launch in the mobile device space
Category: technology
Confidence: 0.9

Example 2:
Text: "The president signed a new tax law today"
Analysis: A political news story about government policy
Category: news
Confidence: 0.8

Example 3:
Text: "Great movie! Outstanding acting and a gripping plot"
Analysis: An opinion about a film, judging its quality
Category: review
Confidence: 0.85

Example 4:
Text: "How to cook the perfect pasta carbonara: secrets from a chef"
Analysis: A cooking topic with recipes and preparation tips
Category: cooking
Confidence: 0.9

Example 5:
Text: "The dollar rose 2%%, analysts expect further growth"
Analysis: Financial information about economic indicators
Category: finance
Confidence: 0.85

Now classify this text:

Analysis:
Category:
Confidence: `, categoriesStr, text)
}

// DuplicateCheckPrompt asks the model whether a proposed category duplicates
// one of the existing ones in meaning. The answer is a bare category name:
// an existing category if it is a duplicate, the proposal otherwise.
func DuplicateCheckPrompt(candidate string, categories []string) string {
	return fmt.Sprintf(`Check whether the proposed category duplicates one of the existing categories.

Existing categories: %s
Proposed category: %s

Consider:
1. Does its meaning match an existing category?
2. Is there a synonym or a category very close in meaning?
3. Should an existing category be used instead of the new one?

If there is a duplicate, return the existing category.
If there is no duplicate, return the proposed category.

Answer (category name only): `, strings.Join(categories, ", "), candidate)
}

// SummaryPrompt asks the model for a concise summary within maxLength
// characters.
func SummaryPrompt(text string, maxLength int) string {
	return fmt.Sprintf(`Your task is to write a short summary of a text.

Summary requirements:
- At most %d characters
- Keep the main idea and the key facts
- Use clear and plain language
- Drop secondary details but preserve the essence

Examples of good summaries:

Source text: "Apple introduced the new iPhone 15 Pro with a titanium body, improved cameras and the new A17 Pro processor. The device switched from Lightning to a USB-C port, a significant change for Apple users. Pricing starts at $999."
Summary: "Apple introduced the iPhone 15 Pro with a titanium body, the A17 Pro processor and a USB-C port. Priced from $999."

Source text: "A study found that regular physical exercise lowers the risk of cardiovascular disease by 35%%. Scientists followed 10,000 participants over 15 years. Cardio workouts of 30 minutes five times a week proved the most effective."
Summary: "Study: regular cardio workouts (30 min, 5 times a week) cut heart disease risk by 35%%."

Source text: "Tesla reported record electric vehicle sales for the third quarter of 2023. 435,000 cars were sold, up 27%% from the previous quarter. Elon Musk noted that most of the growth came from the Model 3 and Model Y."
Summary: "Tesla sold a record 435,000 EVs in Q3 2023 (+27%% quarter over quarter), driven by the Model 3 and Model Y."

Now write a summary for the following text:

%s

Summary: `, maxLength, text)
}
