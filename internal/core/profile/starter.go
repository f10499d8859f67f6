package profile

// Starter is the commented profile document the init command writes out.
// It mirrors the defaults and shows every optional knob
const Starter = `# domain-radar scan profile

# Zones to scan. Spell each with its leading dot
zones:
  - .com
  - .io
  - .dev

# Collections for the optional strategies. Unused when the matching
# strategy is not enabled
keywords:
  - cloud
  - stack
  - forge
names:
  - alice
  - mateo

# Optional strategies to activate alongside the always-on two-letter walk:
# three-letter, four-letter, digits, keywords, keyword-pairs, names
strategies:
  - three-letter
  - keywords

# Yearly USD prices per zone; zones missing here use default_price.
# Candidates in zones priced over price_ceiling are never checked,
# and premium offers above the ceiling are skipped
prices:
  .com: 12
  .io: 36
  .dev: 14
default_price: 15
price_ceiling: 40

# Round shape: how many candidates per round, how they are batched,
# and how many batches may be in flight at once
round_size: 100
batch_size: 10
max_concurrent_batches: 4

# One politeness delay per round, applied before dispatch
round_delay: 2s

# Persist state every save_every processed domains (plus after any
# round with findings)
save_every: 500

# Optional wall-clock limit for the whole run, e.g. 4h. Empty means none
# deadline: 4h
`
