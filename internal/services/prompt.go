package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEvaluationPrompt creates the answer-evaluation prompt. The model is
// told to reply in exactly three labeled lines; the parser treats that
// format as a convention, not a contract.
func (pb *PromptBuilder) BuildEvaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`You are a strict but fair senior interviewer.

Evaluate the candidate's answer below.

Question: %s
Answer: %s

Provide your response in this exact format:

Score: <1-5>
Constructive feedback: <one sentence of feedback>
Correct Answer: <complete answer>

Only return these 3 lines.`, question, answer)
}

// BuildTopicEvaluationPrompt creates the looser prompt used by the
// topic-scoped evaluation endpoint.
func (pb *PromptBuilder) BuildTopicEvaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`You are an expert interviewer.
Evaluate the candidate's answer to the following question.

Question: %s
Answer: %s

Provide:
1. Score (out of 5)
2. Give feedback
3. The correct answer`, question, answer)
}

// BuildResumeQuestionsPrompt creates the question-generation prompt from
// extracted resume text.
func (pb *PromptBuilder) BuildResumeQuestionsPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert interviewer. Based on the resume text below, generate 5 technical interview questions.

Resume:
%s

Questions:`, resumeText)
}

// BuildTopicQuestionsPrompt asks for one question per line.
func (pb *PromptBuilder) BuildTopicQuestionsPrompt(topic, difficulty string) string {
	return fmt.Sprintf(`You are a interviewer.
Generate 5 technical interview questions on the topic "%s" with %s difficulty.
Respond with one question per line.`, topic, difficulty)
}

// BuildNumberedTopicQuestionsPrompt asks for a numbered list.
func (pb *PromptBuilder) BuildNumberedTopicQuestionsPrompt(topic, difficulty string) string {
	return fmt.Sprintf(`Generate 5 %s-level interview questions on the topic: %s.
Format as a numbered list.`, difficulty, topic)
}

// BuildQuizPrompt demands a raw JSON array of multiple-choice questions.
func (pb *PromptBuilder) BuildQuizPrompt(topic string) string {
	return fmt.Sprintf(`Generate 10 multiple-choice questions (MCQs) for the topic "%s".
Some questions should have multiple correct answers.

Return each question as a JSON object with:
- question: string
- options: list of 4 strings
- correct_answer: list of correct options (1 or more)

Return the data as a JSON list only. Do not include markdown or explanations.
Example:
[
  {
    "question": "Which of the following are CI/CD tools?",
    "options": ["Jenkins", "Docker", "Photoshop", "GitHub Actions"],
    "correct_answer": ["Jenkins", "GitHub Actions"]
  }
]`, topic)
}

// BuildReviewPrompt creates the structured resume-review prompt for a role.
func (pb *PromptBuilder) BuildReviewPrompt(resumeText, role string) string {
	return fmt.Sprintf(`You're an expert career advisor. Review the following resume text for the role of %s. Provide a structured and detailed analysis with the following format:

1. Strengths - Highlight specific strengths relevant to %s
2. Weaknesses - Mention areas that could be improved
3. Suggestions - How can the candidate improve the resume
4. Key skills - List key skills relevant to %s
5. Recommended Certifications - Suggest role-relevant certifications

Resume:
%s`, role, role, role, resumeText)
}
