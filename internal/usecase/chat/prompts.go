package chat

const defaultSystemPrompt = `You answer questions about a video using excerpts of its transcript.
Each excerpt starts with the [HH:MM:SS] time it begins at. Cite those times when they help.
If the excerpts do not contain the answer, say that you don't know instead of making one up.`

const condensePrompt = `Given the following conversation and a follow up question, rephrase the follow up question to be a standalone question, in its original language.

Chat History:
%s
Follow Up Input: %s
Standalone question:`

const answerPrompt = `Transcript excerpts:
%s
Question: %s
Helpful Answer:`
