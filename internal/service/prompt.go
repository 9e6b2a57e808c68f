package service

import (
	"fmt"
	"strings"

	"lumo_backend/internal/model"
)

// Prompt construction for the interview coach, question generation and
// SWOT analysis. Pure functions: invalid enum inputs are coerced to
// defaults, never rejected.

var yearLabels = map[model.StudyYear]string{
	model.YearFirst:  "1st",
	model.YearSecond: "2nd",
	model.YearThird:  "3rd",
	model.YearFourth: "4th",
}

var validLevels = map[model.CoachLevel]bool{
	model.LevelEasy:   true,
	model.LevelMedium: true,
	model.LevelHard:   true,
	model.LevelPro:    true,
}

// CoachSystemPrompt returns the system prompt for the interview coach,
// conditioned on the student's year of study and difficulty preference.
// Unknown values fall back to first year / medium difficulty.
func CoachSystemPrompt(year model.StudyYear, level model.CoachLevel) string {
	yearStr, ok := yearLabels[year]
	if !ok {
		yearStr = yearLabels[model.YearFirst]
	}
	levelStr := string(level)
	if !validLevels[level] {
		levelStr = string(model.LevelMedium)
	}

	return fmt.Sprintf(`You are an expert interview preparation coach. Your role is to guide candidates professionally and supportively while building their confidence throughout the interaction. Avoid any introductions.

Interaction Framework:
Start the session by asking the candidate for their target role and company, and then confirm if the focus should be on a technical deep-dive, a behavioral session, or a full mock interview. Ask relevant, role-specific questions one at a time, tailored to the candidate's experience of %s year and a %s difficulty level. After each response, provide simple and direct feedback covering two key areas: what they did well and what could be improved, along with one concise, actionable tip. Conclude each feedback round by checking for understanding with a simple question like, "Does that make sense?" before proceeding. Throughout the interaction, maintain a confident and professional yet conversational tone, ensuring all responses are direct and to the point, remember answer without any formatting like asterisks or bullet points.`, yearStr, levelStr)
}

// GenerationPrompt asks the model for quiz/coding/interview question
// sets for one internship, as a single raw JSON object.
func GenerationPrompt(company string, skillNames []string) string {
	skills := strings.Join(skillNames, ", ")

	return fmt.Sprintf(`Generate 10 quiz questions, 10 coding challenges, and 10 interview questions for a software engineering internship at "%s" that requires these skills: %s.

Provide the response ONLY in a valid JSON format. Do not include any introductory text, polite phrases, or markdown formatting like %s. The output must be a single, raw JSON object.

The JSON structure must be:
{
  "quiz": [{ "question_text": "...", "options": { "A": "...", "B": "...", "C": "..." }, "correct_answer_key": "..." }],
  "coding": [{ "title": "...", "problem_statement": "...", "test_cases": { "input": "...", "output": "..." } }],
  "interview": [{ "question_text": "...", "suggested_answer": "..." }]
}`, company, skills, "```json")
}

// AnalysisPrompt asks the model for a SWOT-style review of an interview
// practice conversation, as a raw 5-element list.
func AnalysisPrompt(conversation string) string {
	return fmt.Sprintf(`Analyze the following interview practice conversation. Based on the user's responses, provide a SWOT analysis.

Return the analysis ONLY as a list with 5 elements:
1. A string describing the user's strengths.
2. A string describing the user's weaknesses.
3. An integer score for strengths (0-100).
4. An integer score for weaknesses (0-100, where higher means more weakness).
5. A final combined score for the user's performance (0-100).

Do not include any explanation, introductory text, or markdown formatting like %s. The output must be a single bracketed list of two quoted strings followed by three integers.

Conversation:
%s`, "```", conversation)
}
