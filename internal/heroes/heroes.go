// Package heroes defines the playable hero roster and role table.
// It is the single source of truth for hero identity: every other
// package keys matrices and role checks on HeroID, and raw name
// strings are resolved exactly once at the data-loading boundary.
package heroes

import "strings"

// HeroID identifies a hero in the roster. IDs are dense and stable
// within a process, suitable for array-indexed matrices.
type HeroID int

// None is the sentinel for "no hero".
const None HeroID = -1

// Role is a hero's draft role.
type Role int

const (
	RoleTank Role = iota
	RoleBruiser
	RoleHealer
	RoleSupport
	RoleRangedAssassin
	RoleMeleeAssassin
)

// RoleUnknown is reported for IDs outside the roster table. It is not
// a damage role and never matches a real role in composition counts.
const RoleUnknown Role = -1

// String returns the display name of the role.
func (r Role) String() string {
	switch r {
	case RoleTank:
		return "Tank"
	case RoleBruiser:
		return "Bruiser"
	case RoleHealer:
		return "Healer"
	case RoleSupport:
		return "Support"
	case RoleRangedAssassin:
		return "Ranged Assassin"
	case RoleMeleeAssassin:
		return "Melee Assassin"
	default:
		return "Unknown"
	}
}

// IsDamage reports whether the role is a damage-dealing role
// (ranged or melee assassin).
func IsDamage(r Role) bool {
	return r == RoleRangedAssassin || r == RoleMeleeAssassin
}

// Hero is one entry in the roster table.
type Hero struct {
	ID   HeroID
	Name string
	Role Role
}

// The roster table. Order defines HeroID values; append only.
var table = []Hero{
	{0, "Abathur", RoleSupport},
	{1, "Alarak", RoleMeleeAssassin},
	{2, "Alexstrasza", RoleHealer},
	{3, "Ana", RoleHealer},
	{4, "Anduin", RoleHealer},
	{5, "Anub'arak", RoleTank},
	{6, "Artanis", RoleBruiser},
	{7, "Arthas", RoleTank},
	{8, "Auriel", RoleHealer},
	{9, "Azmodan", RoleRangedAssassin},
	{10, "Blaze", RoleTank},
	{11, "Brightwing", RoleHealer},
	{12, "Cassia", RoleRangedAssassin},
	{13, "Chen", RoleBruiser},
	{14, "Chromie", RoleRangedAssassin},
	{15, "D.Va", RoleBruiser},
	{16, "Deathwing", RoleBruiser},
	{17, "Deckard", RoleHealer},
	{18, "Dehaka", RoleBruiser},
	{19, "Diablo", RoleTank},
	{20, "E.T.C.", RoleTank},
	{21, "Falstad", RoleRangedAssassin},
	{22, "Fenix", RoleRangedAssassin},
	{23, "Garrosh", RoleTank},
	{24, "Gazlowe", RoleBruiser},
	{25, "Genji", RoleRangedAssassin},
	{26, "Greymane", RoleRangedAssassin},
	{27, "Gul'dan", RoleRangedAssassin},
	{28, "Hanzo", RoleRangedAssassin},
	{29, "Hogger", RoleBruiser},
	{30, "Illidan", RoleMeleeAssassin},
	{31, "Imperius", RoleBruiser},
	{32, "Jaina", RoleRangedAssassin},
	{33, "Johanna", RoleTank},
	{34, "Junkrat", RoleRangedAssassin},
	{35, "Kael'thas", RoleRangedAssassin},
	{36, "Kel'Thuzad", RoleRangedAssassin},
	{37, "Kerrigan", RoleMeleeAssassin},
	{38, "Kharazim", RoleHealer},
	{39, "Leoric", RoleBruiser},
	{40, "Li Li", RoleHealer},
	{41, "Li-Ming", RoleRangedAssassin},
	{42, "Lt. Morales", RoleHealer},
	{43, "Lunara", RoleRangedAssassin},
	{44, "Lúcio", RoleHealer},
	{45, "Maiev", RoleMeleeAssassin},
	{46, "Mal'Ganis", RoleTank},
	{47, "Malfurion", RoleHealer},
	{48, "Malthael", RoleBruiser},
	{49, "Medivh", RoleSupport},
	{50, "Mei", RoleTank},
	{51, "Mephisto", RoleRangedAssassin},
	{52, "Muradin", RoleTank},
	{53, "Murky", RoleMeleeAssassin},
	{54, "Nazeebo", RoleRangedAssassin},
	{55, "Nova", RoleRangedAssassin},
	{56, "Orphea", RoleRangedAssassin},
	{57, "Qhira", RoleMeleeAssassin},
	{58, "Ragnaros", RoleBruiser},
	{59, "Raynor", RoleRangedAssassin},
	{60, "Rehgar", RoleHealer},
	{61, "Rexxar", RoleBruiser},
	{62, "Samuro", RoleMeleeAssassin},
	{63, "Sgt. Hammer", RoleRangedAssassin},
	{64, "Sonya", RoleBruiser},
	{65, "Stitches", RoleTank},
	{66, "Stukov", RoleHealer},
	{67, "Sylvanas", RoleRangedAssassin},
	{68, "Tassadar", RoleRangedAssassin},
	{69, "The Butcher", RoleMeleeAssassin},
	{70, "The Lost Vikings", RoleSupport},
	{71, "Thrall", RoleBruiser},
	{72, "Tracer", RoleRangedAssassin},
	{73, "Tychus", RoleRangedAssassin},
	{74, "Tyrael", RoleTank},
	{75, "Tyrande", RoleHealer},
	{76, "Uther", RoleHealer},
	{77, "Valeera", RoleMeleeAssassin},
	{78, "Valla", RoleRangedAssassin},
	{79, "Varian", RoleBruiser},
	{80, "Whitemane", RoleHealer},
	{81, "Xul", RoleBruiser},
	{82, "Yrel", RoleBruiser},
	{83, "Zagara", RoleRangedAssassin},
	{84, "Zarya", RoleSupport},
	{85, "Zeratul", RoleMeleeAssassin},
	{86, "Zul'jin", RoleRangedAssassin},
}

// nameIndex maps normalized names (canonical and aliases) to IDs.
var nameIndex = buildNameIndex()

// Extra lookup spellings seen in external data sources.
var aliases = map[string]string{
	"etc":         "E.T.C.",
	"lucio":       "Lúcio",
	"morales":     "Lt. Morales",
	"ltmorales":   "Lt. Morales",
	"hammer":      "Sgt. Hammer",
	"sgthammer":   "Sgt. Hammer",
	"butcher":     "The Butcher",
	"lostvikings": "The Lost Vikings",
	"tlv":         "The Lost Vikings",
	"liming":      "Li-Ming",
	"kelthuzad":   "Kel'Thuzad",
	"kaelthas":    "Kael'thas",
}

func buildNameIndex() map[string]HeroID {
	idx := make(map[string]HeroID, len(table)+len(aliases))
	for _, h := range table {
		idx[normalize(h.Name)] = h.ID
	}
	for alias, canonical := range aliases {
		if id, ok := idx[normalize(canonical)]; ok {
			idx[alias] = id
		}
	}
	return idx
}

// normalize strips punctuation, spacing, and case so that spellings
// like "Kael'thas", "Kaelthas", and "kael'Thas" resolve identically.
func normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch r {
		case '\'', '’', '.', ' ', '-', '_':
			continue
		case 'ú':
			b.WriteRune('u')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Count returns the number of heroes in the roster.
func Count() int {
	return len(table)
}

// All returns the full roster in HeroID order.
func All() []Hero {
	out := make([]Hero, len(table))
	copy(out, table)
	return out
}

// Get returns the hero for an ID.
func Get(id HeroID) (Hero, bool) {
	if id < 0 || int(id) >= len(table) {
		return Hero{}, false
	}
	return table[id], true
}

// Name returns the canonical display name for an ID, or "" if unknown.
func Name(id HeroID) string {
	h, ok := Get(id)
	if !ok {
		return ""
	}
	return h.Name
}

// RoleOf returns the role for an ID, or RoleUnknown for IDs outside the
// roster; callers validate IDs at the data boundary.
func RoleOf(id HeroID) Role {
	h, ok := Get(id)
	if !ok {
		return RoleUnknown
	}
	return h.Role
}

// ByName resolves a raw hero name (canonical, alias, or punctuation
// variant) to its HeroID.
func ByName(name string) (HeroID, bool) {
	id, ok := nameIndex[normalize(name)]
	return id, ok
}
