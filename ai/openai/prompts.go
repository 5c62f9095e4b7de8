package openai

// summaryPrompt instructs the model to return a structured title/summary
// object for a documentation chunk. JSON mode is requested alongside, but the
// schema expectations are spelled out for models with weaker JSON support.
const summaryPrompt = `You are an AI that extracts titles and summaries from documentation chunks.
Return a JSON object with 'title' and 'summary' keys.
For the title: If this seems like the start of a document, extract its title. If it's a middle chunk, derive a descriptive title.
For the summary: Create a concise summary of the main points in this chunk.
Keep both title and summary concise but informative.
Output ONLY the JSON object. Do not include any preamble, explanation, or acknowledgment.`
