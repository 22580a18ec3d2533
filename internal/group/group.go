// Package group joins fragments to extension points by profile name and
// checks that every joined fragment can be called from its extension point.
package group

import (
	"fragment-generator/internal/diagnostic"
	"fragment-generator/internal/match"
	"fragment-generator/internal/model"
)

// Suggestion tuning for orphan fragments.
const (
	suggestMaxDistance = 2
	suggestLimit       = 3
)

// Group is one extension point with the fragments it will call, in
// discovery order.
type Group struct {
	ExtensionPoint model.ExtensionPointModel
	Fragments      []model.FragmentModel
}

// Result is the output of Build.
type Result struct {
	// Groups holds one entry per extension point accepted for emission, in
	// extension-point order.
	Groups []Group
	// Diagnostics holds rejections and orphan-fragment notes.
	Diagnostics []*diagnostic.Info
}

// Build joins fragments to extension points by exact profile-name equality.
//
// An extension point without a provider parameter is rejected as a whole
// when any of its fragments needs a provider; it yields a single
// ProviderParameterRequired diagnostic and no group. Fragments whose profile
// no extension point declares yield an OrphanFragment note.
func Build(eps []model.ExtensionPointModel, frags []model.FragmentModel) Result {
	var res Result

	for _, ep := range eps {
		selected := Select(ep.ProfileName, frags)

		if !ep.HasProvider() && needsProvider(selected) {
			res.Diagnostics = append(res.Diagnostics,
				diagnostic.NewInfo(diagnostic.ProviderParameterRequired, ep.Location, ep.MethodName))

			continue
		}

		res.Groups = append(res.Groups, Group{ExtensionPoint: ep, Fragments: selected})
	}

	res.Diagnostics = append(res.Diagnostics, orphans(eps, frags)...)

	return res
}

// Select returns the fragments whose profile equals profile, keeping order.
func Select(profile string, frags []model.FragmentModel) []model.FragmentModel {
	var out []model.FragmentModel

	for _, f := range frags {
		if f.ProfileName == profile {
			out = append(out, f)
		}
	}

	return out
}

func needsProvider(frags []model.FragmentModel) bool {
	for _, f := range frags {
		if f.HasProviderParameter {
			return true
		}
	}

	return false
}

func orphans(eps []model.ExtensionPointModel, frags []model.FragmentModel) []*diagnostic.Info {
	profiles := make([]string, 0, len(eps))
	declared := make(map[string]struct{}, len(eps))

	for _, ep := range eps {
		profiles = append(profiles, ep.ProfileName)
		declared[ep.ProfileName] = struct{}{}
	}

	var out []*diagnostic.Info

	for _, f := range frags {
		if _, ok := declared[f.ProfileName]; ok {
			continue
		}

		info := diagnostic.NewInfo(diagnostic.OrphanFragment, f.Location, f.QualifiedMethod())
		info.Suggestions = match.Suggest(f.ProfileName, profiles, suggestMaxDistance, suggestLimit)
		out = append(out, info)
	}

	return out
}
