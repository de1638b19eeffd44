package personalizer

const personalizePrompt = `You are editing a recommendation letter written by %s. The draft below was assembled from the author's own past letters and must keep the author's voice.

STUDENT DETAILS:
- Name: %s
- Applying to: %s
- Course taken with the author: %s
- Term: %s
- Academic strength: %s
- Character words: %s
- Academic anecdote: %s
- Character anecdote: %s

RULES (follow all of them exactly):
1. Replace every student name, pronoun and subject reference in the draft with the details above. Change NOTHING else in those sentences.
2. Weave the academic anecdote and the character anecdote into the letter where they fit naturally, matching the style of the surrounding sentences.
3. Do NOT reorder, merge, split, shorten or rewrite any other sentence.
4. Do NOT add headings, commentary, notes or placeholders.
5. Return ONLY the finished letter text.

DRAFT:
%s`
