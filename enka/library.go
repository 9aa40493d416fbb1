package enka

// HoyoType identifies which supported game a record belongs to. The set is
// open-ended: the core never validates values against a known list.
//
//	|hoyoType|Game Name         |
//	|--------|------------------|
//	|0       |Genshin Impact    |
//	|1       |Honkai: Star Rail |
type HoyoType int

const (
	HoyoTypeGenshin  HoyoType = 0
	HoyoTypeStarRail HoyoType = 1
)

// User is a game-specific snapshot of a linked account, produced by the
// Library registered for its hoyo type.
type User interface {
	HoyoType() HoyoType
}

// CharacterBuild is a game-specific snapshot of one saved character build.
type CharacterBuild interface {
	HoyoType() HoyoType
}

// Library is implemented by per-game packages and registered on a System.
// GetUser receives the raw game account object; GetCharacterBuild receives
// one raw build object along with the owning username and account hash.
type Library interface {
	HoyoType() HoyoType
	GetUser(data []byte) (User, error)
	GetCharacterBuild(data []byte, username, hash string) (CharacterBuild, error)
}
