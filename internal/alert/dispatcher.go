// Package alert maps threat levels to escalation actions. Delivery
// channels (SMS, messaging apps, police desks) are external collaborators
// behind the Notifier interface; the in-tree notifiers log the alert.
package alert

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kavach-labs/kavach/internal/model"
)

// Rule describes which notification classes a threat level triggers
type Rule struct {
	NotifyFamily bool
	NotifyPolice bool
	Message      string
}

// Compiled-in escalation table. Not externally loaded at runtime.
var escalationRules = map[model.ThreatLevel]Rule{
	model.LevelSafe: {
		Message: "[SAFE] Call appears SAFE. No action required.",
	},
	model.LevelSuspicious: {
		Message: "[WARNING] SUSPICIOUS activity detected. " +
			"Advise the senior NOT to share personal or financial details. " +
			"Monitor the situation.",
	},
	model.LevelHighRisk: {
		NotifyFamily: true,
		Message: "[HIGH RISK] HIGH RISK scam detected! " +
			"Family members have been notified. " +
			"Senior should end the call immediately and consult family.",
	},
	model.LevelCritical: {
		NotifyFamily: true,
		NotifyPolice: true,
		Message: "[CRITICAL] CRITICAL THREAT -- SCAM CALL IN PROGRESS! " +
			"Emergency alert sent to family AND local cybercrime police. " +
			"Senior must HANG UP IMMEDIATELY. Do NOT share any information.",
	},
}

// RuleFor returns the escalation rule for a level. Unrecognized levels
// fail safe to the SUSPICIOUS rule: advisory only, never silent and never
// full escalation.
func RuleFor(level model.ThreatLevel) Rule {
	if rule, ok := escalationRules[level]; ok {
		return rule
	}
	return escalationRules[model.LevelSuspicious]
}

// Notifier delivers one alert to one notification class
type Notifier interface {
	Notify(level model.ThreatLevel, summary string) error
}

// Dispatcher applies the escalation table and fans alerts out to the
// configured notifiers.
type Dispatcher struct {
	family Notifier
	police Notifier
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher. Nil notifiers disable that class.
func NewDispatcher(family, police Notifier, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{family: family, police: police, logger: logger}
}

// Escalate triggers the notification classes for the level and returns a
// human-readable report of the actions taken.
func (d *Dispatcher) Escalate(level model.ThreatLevel, summary string) string {
	rule := RuleFor(level)

	d.logger.Info("escalation triggered",
		zap.String("threat_level", string(level)),
		zap.Bool("notify_family", rule.NotifyFamily),
		zap.Bool("notify_police", rule.NotifyPolice))

	var actions []string

	if rule.NotifyFamily && d.family != nil {
		if err := d.family.Notify(level, summary); err != nil {
			d.logger.Error("family notification failed", zap.Error(err))
			actions = append(actions, "[FAIL] Family notification failed: "+err.Error())
		} else {
			actions = append(actions, "[OK] Family notified")
		}
	}
	if rule.NotifyPolice && d.police != nil {
		if err := d.police.Notify(level, summary); err != nil {
			d.logger.Error("police notification failed", zap.Error(err))
			actions = append(actions, "[FAIL] Cybercrime police notification failed: "+err.Error())
		} else {
			actions = append(actions, "[OK] Cybercrime police alerted")
		}
	}
	if len(actions) == 0 {
		actions = append(actions, "[INFO] No external alerts sent")
	}

	return rule.Message + "\n\nActions taken:\n" + strings.Join(actions, "\n")
}

// ConsoleFamilyNotifier writes a simulated family alert to the log
type ConsoleFamilyNotifier struct {
	Contact    string
	SeniorName string
	Logger     *zap.Logger
}

func (n *ConsoleFamilyNotifier) Notify(level model.ThreatLevel, summary string) error {
	msg := fmt.Sprintf("Guardian alert! %s is on a %s risk call. Details: %s. Please check on them immediately.",
		n.SeniorName, level, truncate(summary, 120))
	n.Logger.Warn("family alert",
		zap.String("to", n.Contact),
		zap.Time("time", time.Now()),
		zap.String("message", msg))
	return nil
}

// ConsolePoliceNotifier writes a simulated cybercrime incident report to
// the log
type ConsolePoliceNotifier struct {
	Station string
	Logger  *zap.Logger
}

func (n *ConsolePoliceNotifier) Notify(level model.ThreatLevel, summary string) error {
	n.Logger.Warn("cybercrime incident report",
		zap.String("station", n.Station),
		zap.String("severity", string(level)),
		zap.String("details", truncate(summary, 200)),
		zap.String("action", "incident logged for follow-up"))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
