package namegen

import "strings"

func lettersAZ() []string {
	out := make([]string, 0, 26)
	for r := 'a'; r <= 'z'; r++ {
		out = append(out, string(r))
	}
	return out
}

// digitStrings returns every 2- and 3-digit string, leading zeros included
func digitStrings() []string {
	out := make([]string, 0, 100+1000)
	for i := 0; i < 100; i++ {
		out = append(out, string(rune('0'+i/10))+string(rune('0'+i%10)))
	}
	for i := 0; i < 1000; i++ {
		out = append(out, string(rune('0'+i/100))+string(rune('0'+i/10%10))+string(rune('0'+i%10)))
	}
	return out
}

type productStrategy struct {
	name string
	p    *product
}

func (s *productStrategy) Name() string         { return s.name }
func (s *productStrategy) Next() (string, bool) { return s.p.next() }

// joinLabel concatenates all parts but the last into the label and
// assembles it with the final part as the zone
func joinLabel(parts []string) string {
	n := len(parts)
	return Domain(strings.Join(parts[:n-1], ""), parts[n-1])
}

// TwoLetter enumerates every aa..zz label across the zones. Always active
func TwoLetter(zones []string) Strategy {
	l := lettersAZ()
	return &productStrategy{
		name: StrategyTwoLetter,
		p:    newProduct(joinLabel, nil, l, l, zones),
	}
}

// ThreeLetter enumerates every aaa..zzz label across the zones
func ThreeLetter(zones []string) Strategy {
	l := lettersAZ()
	return &productStrategy{
		name: StrategyThreeLetter,
		p:    newProduct(joinLabel, nil, l, l, l, zones),
	}
}

// FourLetter enumerates every aaaa..zzzz label across the zones
func FourLetter(zones []string) Strategy {
	l := lettersAZ()
	return &productStrategy{
		name: StrategyFourLetter,
		p:    newProduct(joinLabel, nil, l, l, l, l, zones),
	}
}

// Digits enumerates every 2- and 3-digit label across the zones
func Digits(zones []string) Strategy {
	return &productStrategy{
		name: StrategyDigits,
		p:    newProduct(joinLabel, nil, digitStrings(), zones),
	}
}

// Keywords enumerates each configured keyword across the zones
func Keywords(keywords, zones []string) Strategy {
	return &productStrategy{
		name: StrategyKeywords,
		p:    newProduct(joinLabel, nil, keywords, zones),
	}
}

// KeywordPairs enumerates ordered concatenations of two distinct
// keywords across the zones; same-keyword pairs are skipped
func KeywordPairs(keywords, zones []string) Strategy {
	skip := func(parts []string) bool { return parts[0] == parts[1] }
	return &productStrategy{
		name: StrategyKeywordPairs,
		p:    newProduct(joinLabel, skip, keywords, keywords, zones),
	}
}

// Names enumerates each configured name across the zones
func Names(names, zones []string) Strategy {
	return &productStrategy{
		name: StrategyNames,
		p:    newProduct(joinLabel, nil, names, zones),
	}
}
