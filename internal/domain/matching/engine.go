package matching

import (
	"math"

	"jobboard/internal/domain/skill"
)

type UserSkill struct {
	SkillName        string
	ProficiencyLevel int
	YearsExperience  int
}

type JobRequirement struct {
	SkillName     string
	RequiredLevel int
	IsMandatory   bool
	RequiredYears int
}

type MatchedSkill struct {
	SkillName         string `json:"skill"`
	ScoreContribution int    `json:"scoreContribution"`
}

type MissingSkill struct {
	SkillName   string `json:"skill"`
	IsMandatory bool   `json:"mandatory"`
}

type Result struct {
	MatchScore       int
	MandatoryMissing bool
	MatchedSkills    []MatchedSkill
	MissingSkills    []MissingSkill
}

// Requirements turns a posting's skill tags into requirements: required
// skills are mandatory, the rest optional. A tag present in both lists
// counts once, as mandatory.
func Requirements(required, optional []string) []JobRequirement {
	out := make([]JobRequirement, 0, len(required)+len(optional))
	seen := make(map[string]struct{}, len(required)+len(optional))
	add := func(name string, mandatory bool) {
		k := skill.Key(name)
		if k == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, JobRequirement{SkillName: name, RequiredLevel: 1, IsMandatory: mandatory})
	}
	for _, s := range required {
		add(s, true)
	}
	for _, s := range optional {
		add(s, false)
	}
	return out
}

// Calculate scores a skill profile against job requirements: mandatory
// skills share 60 points, optional skills 30 and experience 10.
func Calculate(userSkills []UserSkill, reqs []JobRequirement) Result {
	userBySkill := make(map[string]UserSkill, len(userSkills))
	for _, us := range userSkills {
		k := skill.Key(us.SkillName)
		if k == "" {
			continue
		}
		userBySkill[k] = us
	}

	mandatory := make([]JobRequirement, 0)
	optional := make([]JobRequirement, 0)
	for _, r := range reqs {
		if skill.Key(r.SkillName) == "" {
			continue
		}
		if r.IsMandatory {
			mandatory = append(mandatory, r)
		} else {
			optional = append(optional, r)
		}
	}

	var mandatoryTotal float64
	var optionalTotal float64
	var expTotal float64

	matched := make([]MatchedSkill, 0, len(reqs))
	missing := make([]MissingSkill, 0)

	mandatoryPer := 0.0
	if len(mandatory) > 0 {
		mandatoryPer = 60.0 / float64(len(mandatory))
	}
	optionalPer := 0.0
	if len(optional) > 0 {
		optionalPer = 30.0 / float64(len(optional))
	}

	expDenom := 0
	expSum := 0.0

	mandatoryMissing := false

	scoreReq := func(us UserSkill, r JobRequirement, weight float64) float64 {
		reqLvl := clampInt(r.RequiredLevel, 1, 5)
		usrLvl := clampInt(us.ProficiencyLevel, 0, 5)
		if usrLvl <= 0 {
			return 0
		}
		if usrLvl >= reqLvl {
			return weight
		}
		return weight * (float64(usrLvl) / float64(reqLvl))
	}

	score := func(group []JobRequirement, weight float64, total *float64) {
		for _, r := range group {
			us, ok := userBySkill[skill.Key(r.SkillName)]
			expDenom++
			if !ok {
				if r.IsMandatory {
					mandatoryMissing = true
				}
				missing = append(missing, MissingSkill{SkillName: r.SkillName, IsMandatory: r.IsMandatory})
				continue
			}

			contrib := scoreReq(us, r, weight)
			*total += contrib
			matched = append(matched, MatchedSkill{SkillName: r.SkillName, ScoreContribution: int(math.Round(contrib))})
			expSum += expRatio(us, r)
		}
	}
	score(mandatory, mandatoryPer, &mandatoryTotal)
	score(optional, optionalPer, &optionalTotal)

	if expDenom > 0 {
		expTotal = 10.0 * (expSum / float64(expDenom))
	}

	total := mandatoryTotal + optionalTotal + expTotal
	s := int(math.Round(total))
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}

	return Result{
		MatchScore:       s,
		MandatoryMissing: mandatoryMissing,
		MatchedSkills:    matched,
		MissingSkills:    missing,
	}
}

func expRatio(us UserSkill, r JobRequirement) float64 {
	reqYears := r.RequiredYears
	if reqYears <= 0 {
		return 1
	}
	usrYears := us.YearsExperience
	if usrYears <= 0 {
		return 0
	}
	ratio := float64(usrYears) / float64(reqYears)
	if ratio > 1 {
		return 1
	}
	return ratio
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
