package idgenerator

import "fmt"

// nonTimeBits is how many bits the default layout leaves for node id and
// sequence together. Shard layouts redistribute them.
const nonTimeBits = defaultNodeBits + defaultSequenceBits

// ValidateNodeID checks nodeID against the layout's node bits.
func ValidateNodeID(l Layout, nodeID int64) error {
	if nodeID < 0 || nodeID > l.MaxNodeID() {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidNodeID, nodeID, l.MaxNodeID())
	}
	return nil
}

// ShardLayout returns a layout that gives a team of teamSize shards just
// enough node bits to number every shard and leaves the rest of the non-time
// bits to the sequence. Smaller teams get more ids per millisecond per shard.
func ShardLayout(teamSize int64) (Layout, error) {
	nodeBits, err := BitsRequiredFor(teamSize)
	if err != nil {
		return Layout{}, err
	}
	if nodeBits >= nonTimeBits {
		return Layout{}, fmt.Errorf("%w: %d shards leave no sequence bits", ErrInvalidTeamSize, teamSize)
	}
	return Layout{
		TimestampBits: totalBits - nonTimeBits,
		NodeBits:      nodeBits,
		SequenceBits:  nonTimeBits - nodeBits,
	}, nil
}

// NewShardGenerator creates the generator for member shardIndex of a team of
// teamSize shards. Any layout option is overridden by the shard layout.
func NewShardGenerator(shardIndex, teamSize int64, opts ...Option) (*IDGenerator, error) {
	layout, err := ShardLayout(teamSize)
	if err != nil {
		return nil, err
	}
	if shardIndex >= teamSize {
		return nil, fmt.Errorf("%w: shard %d of a team of %d", ErrInvalidNodeID, shardIndex, teamSize)
	}
	return NewIDGenerator(shardIndex, append(opts[:len(opts):len(opts)], WithLayout(layout))...)
}
