package advisory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/miriamsimone/upwind/internal/roster"
	"github.com/miriamsimone/upwind/internal/weather"
)

const systemPrompt = `You are a scheduling assistant for a flight training school. A student's lesson conflicts with weather that violates their certified minimums. Propose exactly 3 alternative lesson times within the next 7 days.

Respond with ONLY a JSON array of exactly 3 objects and no prose outside it. Each object must have these fields:
- "proposed_at": proposed date and time (ISO 8601)
- "reasoning": why this time works for this student
- "conditions": object with "visibility", "winds", "sky" and optionally "temperature"
- "tradeoffs": (optional) downsides of this slot
- "benefits": (optional) upsides of this slot

Favor times consistent with the student's training level and the expected conditions. Do not wrap the array in markdown fences.`

// BuildRequest produces the system and user prompts for a rescheduling
// request from the student profile, a representative weather reading
// and the conflict context.
func BuildRequest(student *roster.Student, reading weather.Reading, conflict ConflictDescriptor) (string, string) {
	profile, _ := json.MarshalIndent(student, "", "  ")
	conditions, _ := json.MarshalIndent(reading, "", "  ")

	userPrompt := fmt.Sprintf(`Student Profile:
%s

Representative Forecast Conditions:
%s

Conflicted Lesson:
- Originally scheduled: %s
- Reason: %s`,
		string(profile),
		string(conditions),
		conflict.OriginalTime.UTC().Format(time.RFC3339),
		conflict.Reason,
	)

	if conflict.Notes != "" {
		userPrompt += fmt.Sprintf("\n- Notes: %s", conflict.Notes)
	}

	return systemPrompt, userPrompt
}
