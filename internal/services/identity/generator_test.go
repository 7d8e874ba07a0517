package identity

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ranchgame/internal/dependencies/mocks"
	"github.com/mcoot/ranchgame/internal/model"
)

type GeneratorSuite struct {
	suite.Suite
	generator *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func (s *GeneratorSuite) SetupTest() {
	s.generator = NewGenerator("")
}

// DeriveDigest tests

func (s *GeneratorSuite) TestDeriveDigestKnownVector() {
	digest, err := DeriveDigest("salt42", 7)
	s.Require().NoError(err)
	s.Equal("fe1c83e31b310e85cb97e2818ddc0ffb8029feea0b6a620a36df075988322e78", hex.EncodeToString(digest[:]))
}

func (s *GeneratorSuite) TestDeriveDigestMatchesIndependentHash() {
	digest, err := DeriveDigest("salt42", 7)
	s.Require().NoError(err)
	s.Equal(sha256.Sum256([]byte("salt42|7")), digest)
}

func (s *GeneratorSuite) TestDeriveDigestRejectsNegativeIndex() {
	_, err := DeriveDigest("salt42", -1)
	s.ErrorIs(err, model.ErrInvalidIndex)
}

// Derive tests

func (s *GeneratorSuite) TestDeriveKnownVector() {
	id, err := NewGenerator("salt42").Derive(7)
	s.Require().NoError(err)

	s.Equal("fe1c83e31b310e85cb97e2818ddc0ffb", id.Key)
	s.Equal(uint32(2150235882), id.NameSeed)
	s.Equal("hungry-catfish", id.Username)
	s.Equal(model.RanchLunar, id.Ranch)
}

func (s *GeneratorSuite) TestDeriveDefaultSaltVectors() {
	cases := []struct {
		index    int
		key      string
		username string
		ranch    model.Ranch
	}{
		{0, "08fc419c6c862e017204aeb836c5897a", "original-mastiff", model.RanchSolar},
		{1, "1837a35d0afd462bdbbc627e83cf69e0", "trailing-cobra", model.RanchLunar},
		{5, "29766caa543f2fffc36d871e6bd4bb0c", "cozy-mongoose", model.RanchAurora},
	}

	for _, tc := range cases {
		id, err := s.generator.Derive(tc.index)
		s.Require().NoError(err)
		s.Equal(tc.key, id.Key, "index %d", tc.index)
		s.Equal(tc.username, id.Username, "index %d", tc.index)
		s.Equal(tc.ranch, id.Ranch, "index %d", tc.index)
	}
}

func (s *GeneratorSuite) TestDeriveSeedFollowsKeyMaterial() {
	digest, _ := DeriveDigest(DefaultSalt, 123)
	id, err := s.generator.Derive(123)
	s.Require().NoError(err)

	s.Equal(hex.EncodeToString(digest[:KeyLengthBytes]), id.Key)
	s.Equal(binary.BigEndian.Uint32(digest[KeyLengthBytes:KeyLengthBytes+4]), id.NameSeed)
	s.Equal(SynthesizeName(id.NameSeed), id.Username)
}

func (s *GeneratorSuite) TestDeriveRejectsNegativeIndex() {
	_, err := s.generator.Derive(-3)
	s.ErrorIs(err, model.ErrInvalidIndex)
}

func (s *GeneratorSuite) TestSaltChangesIdentity() {
	a, _ := NewGenerator("one").Derive(3)
	b, _ := NewGenerator("two").Derive(3)
	s.NotEqual(a.Key, b.Key)
}

// Generate tests

func (s *GeneratorSuite) TestGenerateDefaults() {
	player, err := s.generator.Generate(0)
	s.Require().NoError(err)

	s.Regexp(regexp.MustCompile(`^[0-9a-f]{32}$`), player.Key)
	s.Regexp(regexp.MustCompile(`^[a-z]+-[a-z]+$`), player.Username)
	s.Equal(0, player.Points)
	s.NotNil(player.Medals)
	s.Empty(player.Medals)
	s.Nil(player.ID)
	s.Nil(player.Token)
	s.Nil(player.LastTradeIn)
	s.Nil(player.LastTradeOut)
}

func (s *GeneratorSuite) TestGenerateIsDeterministic() {
	for i := 0; i < 50; i++ {
		a, err := s.generator.Generate(i)
		s.Require().NoError(err)
		b, err := NewGenerator(DefaultSalt).Generate(i)
		s.Require().NoError(err)

		s.Equal(a.Key, b.Key)
		s.Equal(a.Username, b.Username)
		s.Equal(a.Ranch, b.Ranch)
	}
}

func (s *GeneratorSuite) TestGenerateKeysAreUnique() {
	seen := make(map[string]int, 10000)
	for i := 0; i < 10000; i++ {
		player, err := s.generator.Generate(i)
		s.Require().NoError(err)
		if prev, ok := seen[player.Key]; ok {
			s.Failf("duplicate key", "indices %d and %d share key %s", prev, i, player.Key)
		}
		seen[player.Key] = i
	}
}

func (s *GeneratorSuite) TestRanchDistributionIsEven() {
	const perRanch = 25
	counts := make(map[model.Ranch]int)
	for i := 0; i < len(model.Ranches)*perRanch; i++ {
		player, err := s.generator.Generate(i)
		s.Require().NoError(err)
		counts[player.Ranch]++
	}

	s.Len(counts, len(model.Ranches))
	for _, ranch := range model.Ranches {
		s.Equal(perRanch, counts[ranch], "ranch %s", ranch)
	}
}

func (s *GeneratorSuite) TestGenerateConcurrentMatchesSequential() {
	const count = 200
	want := make([]string, count)
	for i := 0; i < count; i++ {
		p, _ := s.generator.Generate(i)
		want[i] = p.Key + "/" + p.Username
	}

	got := make([]string, count)
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, _ := s.generator.Generate(i)
			got[i] = p.Key + "/" + p.Username
		}(i)
	}
	wg.Wait()

	s.Equal(want, got)
}

// SynthesizeName tests

func (s *GeneratorSuite) TestSynthesizeNameIsStable() {
	s.Equal(SynthesizeName(2150235882), SynthesizeName(2150235882))
	s.Equal("hungry-catfish", SynthesizeName(2150235882))
}

func (s *GeneratorSuite) TestSynthesizeNameFromPicksOneWordPerDictionary() {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(0, len(Animals)-1)

	name := SynthesizeNameFrom(rnd)

	s.Equal(Adjectives[0]+"-"+Animals[len(Animals)-1], name)
	s.Equal([]int{len(Adjectives), len(Animals)}, rnd.Bounds)
}

func (s *GeneratorSuite) TestDictionariesLoaded() {
	s.Len(Adjectives, 1751)
	s.Len(Animals, 527)
	s.Equal("abiding", Adjectives[0])
	s.Equal("zorilla", Animals[len(Animals)-1])
	s.Equal("namegen/v2", NameAlgorithm)
}

func (s *GeneratorSuite) TestDictionaryWordsAreDistinctLowercaseWords() {
	for name, dict := range map[string][]string{"adjectives": Adjectives, "animals": Animals} {
		seen := make(map[string]bool, len(dict))
		for _, word := range dict {
			s.Regexp(`^[a-z]+$`, word, "%s: %q", name, word)
			s.False(seen[word], "%s: duplicate %q", name, word)
			seen[word] = true
		}
	}
}

func (s *GeneratorSuite) TestUsernamesRarelyCollide() {
	const count = 1000
	seen := make(map[string]bool, count)
	duplicates := 0
	for i := 0; i < count; i++ {
		player, err := s.generator.Generate(i)
		s.Require().NoError(err)
		if seen[player.Username] {
			duplicates++
		}
		seen[player.Username] = true
	}

	s.GreaterOrEqual(len(Adjectives)*len(Animals), 900_000)
	s.LessOrEqual(duplicates, 2)
}
