package categorizer

const analysisPrompt = `You are analyzing sentences taken from a teacher's recommendation letter.

Assign every sentence below to exactly one of these five categories:
- introduction_context: how the writer knows the student, the course, the setting
- endorsement: explicit statements of recommendation or support
- commentary: observations about the student's work, performance or growth
- qualities: personal or academic traits of the student
- further_discussion: closing remarks, offers to discuss further, contact details

Sentences:
---
%s
---

Respond with valid JSON matching this schema:
{
  "introduction_context": ["sentence", ...],
  "endorsement": ["sentence", ...],
  "commentary": ["sentence", ...],
  "qualities": ["sentence", ...],
  "further_discussion": ["sentence", ...]
}

Rules:
- Use exactly these five keys.
- Copy every sentence verbatim. Do not rewrite, merge or split sentences.
- Every sentence must appear exactly once across all arrays.

Return ONLY the JSON object, no markdown fences or other text.`

const templatePrompt = `You are labeling the sentences of a teacher's recommendation letter.

For each numbered sentence, choose exactly one label:
introduction_context, endorsement, commentary, qualities, further_discussion

Sentences:
%s

Respond with a JSON array containing exactly %d labels, one per sentence, in order.
Example: ["introduction_context", "qualities", "endorsement"]

Return ONLY the JSON array, no markdown fences or other text.`
