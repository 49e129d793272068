package intake

import (
	"fmt"
	"strings"
)

var fieldTitles = map[Step]string{
	StepChoosingType: "type",
	StepTopic:        "topic",
	StepSubject:      "subject",
	StepDeadline:     "deadline",
	StepVolume:       "volume",
	StepRequirements: "requirements",
	StepFiles:        "files",
	StepPromo:        "promo code",
}

// prompt builds a reply that ends with the question for the current step.
func (m *Machine) prompt(d *Draft, notes ...string) *Reply {
	reply := &Reply{
		Step:     d.Step,
		Price:    d.Price,
		Discount: d.Discount,
	}
	reply.say(notes...)

	step := d.Step
	if step == StepEditingField {
		step = d.EditingField
		reply.say("Editing " + fieldTitles[step] + ".")
	}
	text, choices := m.question(d, step)
	reply.say(text)
	reply.Choices = choices
	return reply
}

func (m *Machine) question(d *Draft, step Step) (string, []string) {
	switch step {
	case StepChoosingType:
		choices := make([]string, 0, len(m.catalog.WorkTypes))
		for _, w := range m.catalog.WorkTypes {
			choices = append(choices, w.Label)
		}
		return "Choose the type of work:", choices
	case StepTopic:
		return "Enter the topic of the work.", nil
	case StepSubject:
		return "Enter the subject.", nil
	case StepDeadline:
		return "Enter the deadline as DD.MM.YYYY, for example 10.10.2030.", nil
	case StepVolume:
		return "Enter the volume, for example 20 pages.", nil
	case StepRequirements:
		return "Describe your requirements, or send - if there are none.", []string{"-"}
	case StepFiles:
		limits := m.catalog.Files
		return fmt.Sprintf("Attach up to %d files of at most %d MB each, then send /done.",
			limits.MaxCount, limits.MaxSizeBytes/(1024*1024)), []string{"/done"}
	case StepPromo:
		return "Enter a promo code, or send - to continue without one.", []string{"-"}
	case StepConfirming:
		return m.summary(d), []string{"/confirm", "/edit", "/cancel"}
	default:
		return "Send /order to place an order.", []string{"/order"}
	}
}

func (m *Machine) summary(d *Draft) string {
	wt, _ := m.catalog.WorkType(d.OrderType)
	requirements := d.Requirements
	if requirements == "" {
		requirements = "none"
	}

	var b strings.Builder
	b.WriteString("Please check your order:\n")
	fmt.Fprintf(&b, "Type: %s\n", wt.Label)
	fmt.Fprintf(&b, "Topic: %s\n", d.Topic)
	fmt.Fprintf(&b, "Subject: %s\n", d.Subject)
	fmt.Fprintf(&b, "Deadline: %s\n", d.Deadline.Format("02.01.2006"))
	fmt.Fprintf(&b, "Volume: %s\n", d.VolumeRaw)
	fmt.Fprintf(&b, "Requirements: %s\n", requirements)
	fmt.Fprintf(&b, "Files: %d\n", len(d.Attachments))
	if d.Promo != nil {
		fmt.Fprintf(&b, "Promo code: %s, discount %d\n", d.Promo.Code, d.Discount)
	}
	fmt.Fprintf(&b, "Total: %d\n", d.Price)
	b.WriteString("Send /confirm to place the order or /edit <field> to change something.")
	return b.String()
}
