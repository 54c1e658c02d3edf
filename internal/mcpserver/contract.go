package mcpserver

// HabitFormatContract describes the canonical habit record format that
// LLM consumers should follow when creating or updating habits.
const HabitFormatContract = `# Uruz Habit Record Contract

Every habit record stored in Uruz follows this structure.

## Structure

` + "```" + `json
{
  "id": "3f6f0a2e-...",              // server-assigned UUID, read-only
  "title": "Drink Water",            // REQUIRED, 1-100 characters after trimming
  "notes": "Eight glasses a day",    // OPTIONAL, up to 500 characters
  "positive": true,                  // habit is reinforced by completion
  "negative": false,                 // habit is something to avoid
  "difficulty": "medium",            // one of: easy, medium, hard
  "counter": 12,                     // lifetime completion count, never negative
  "streak": 12,                      // distinct-day completion count
  "datesCompleted": ["2026-09-01"],  // sorted calendar days, server-maintained
  "createdAt": "2026-09-01T08:00:00Z",
  "updatedAt": "2026-09-01T08:00:00Z"
}
` + "```" + `

## Rules

1. **Title is required.** Leading and trailing whitespace is stripped before
   validation; a whitespace-only title is rejected.
2. **Difficulty** must be one of ` + "`" + `easy` + "`" + `, ` + "`" + `medium` + "`" + ` or ` + "`" + `hard` + "`" + `.
   When omitted on create it defaults to ` + "`" + `medium` + "`" + `.
3. **Counter is canonical.** Strength is derived from it: a habit with a
   counter above 10 is ` + "`" + `strong` + "`" + `, otherwise ` + "`" + `weak` + "`" + `. Never send a
   strength field.
4. **Completion is per calendar day.** Completing a habit twice on the same
   day bumps the counter but records the date and bumps the streak only once.
   Use the ` + "`" + `complete_habit` + "`" + ` tool; never write ` + "`" + `datesCompleted` + "`" + ` directly.
5. **Counter adjustments clamp at zero.** A decrement below zero leaves the
   counter at zero rather than failing.
6. **Dates** use the ` + "`" + `YYYY-MM-DD` + "`" + ` layout in UTC; timestamps are RFC 3339.
`
