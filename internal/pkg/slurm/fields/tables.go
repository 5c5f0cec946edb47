package fields

import (
	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/decode"
)

// safe adapts a total decoder: a nil result is a legitimate decoded null
// (sentinel or unknown), never a failure.
func safe[T any](fn func(string) *T) DecodeFunc {
	return func(s string) (any, bool) {
		return fn(s), true
	}
}

// strict adapts a domain-type parser: a nil result is a decode failure.
func strict[T any](fn func(string) *T) DecodeFunc {
	return func(s string) (any, bool) {
		v := fn(s)
		if v == nil {
			return nil, false
		}
		return v, true
	}
}

// fallible adapts a parser with an explicit error return.
func fallible[T any](fn func(string) (T, error)) DecodeFunc {
	return func(s string) (any, bool) {
		v, err := fn(s)
		if err != nil {
			return nil, false
		}
		return v, true
	}
}

// csl adapts the comma-separated list decoder, which is total.
func csl() DecodeFunc {
	return func(s string) (any, bool) {
		return decode.CommaSeparatedList(s), true
	}
}

// Field vocabularies follow the scontrol and sacctmgr documentation:
// https://slurm.schedmd.com/scontrol.html and
// https://slurm.schedmd.com/sacctmgr.html. Keys are lower-cased field names
// as they appear in command output.

// JobsShow covers fields specific to `scontrol show jobs`.
var JobsShow = Table{
	"allocnode:sid":       WriteOnly,
	"batchflag":           WriteOnly,
	"exitcode":            Decode(strict(decode.ParseExitCode)),
	"groupid":             PassThrough,
	"jobstate":            PassThrough,
	"nodelistindices":     WriteOnly,
	"ntaskspern:b:s:c":    Decode(strict(decode.ParseNTasksPerNBSC)),
	"preempteligibletime": Decode(safe(decode.ParseTimepoint)),
	"preempttime":         Decode(safe(decode.ParseTimepoint)),
	"presustime":          Decode(safe(decode.ParseTimepoint)),
	"reason":              PassThrough,
	"reqb:s:c:t":          Decode(strict(decode.ParseReqBSCT)),
	"secspresuspend":      Decode(safe(decode.SecondsDuration)),
	"socks/node":          Decode(safe(decode.DontCareInt)),
	"submittime":          Decode(safe(decode.ParseTimepoint)),
	"suspendtime":         Decode(safe(decode.ParseTimepoint)),
}

// JobsUpdate covers fields shared with the `scontrol update job` form.
var JobsUpdate = Table{
	"account":           PassThrough,
	"admincomment":      PassThrough,
	"arraytaskthrottle": WriteOnly,
	"burstbuffer":       WriteOnly,
	"clusters":          WriteOnly,
	"clusterfeatures":   WriteOnly,
	"comment":           PassThrough,
	"contiguous":        Decode(safe(decode.IntBool)),
	"corespec":          Decode(safe(decode.Int)),
	"cpuspertask":       Decode(safe(decode.Int)),
	"deadline":          Decode(safe(decode.ParseTimepoint)),
	"delayboot":         Decode(safe(decode.ParseSlurmDuration)),
	"dependency":        NotImplemented,
	"eligibletime":      Decode(safe(decode.ParseTimepoint)),
	"endtime":           Decode(safe(decode.ParseTimepoint)),
	"excnodelist":       Decode(strict(decode.ParseNodeList)),
	"extra":             PassThrough,
	"features":          PassThrough,
	"gres":              NotImplemented,
	"gres_idx":          NotImplemented,
	"jobid":             Decode(safe(decode.Int)),
	"licenses":          WriteOnly,
	"mailtype":          PassThrough,
	"mailuser":          PassThrough,
	"mincpusnode":       Decode(safe(decode.Int)),
	"minmemorycpu":      NotImplemented, // memory spec without the c/n code
	"minmemorynode":     NotImplemented, // memory spec without the c/n code
	"mintmpdisknode":    Decode(safe(decode.MemoryMBToBytes)),
	"timemin":           Decode(safe(decode.ParseSlurmDuration)),
	"jobname":           PassThrough,
	"name":              WriteOnly,
	"nice":              Decode(safe(decode.Int)),
	"numcpus":           NotImplemented, // int or int range
	"numnodes":          NotImplemented, // int or int range
	"numtasks":          Decode(safe(decode.Int)),
	"oversubscribe":     NotImplemented,
	"partition":         PassThrough,
	"prefer":            WriteOnly,
	"priority":          Decode(safe(decode.Int)),
	"qos":               PassThrough,
	"reboot":            Decode(safe(decode.IntBool)),
	"reqcores":          Decode(safe(decode.Int)),
	"reqnodelist":       Decode(strict(decode.ParseNodeList)),
	"reqnodes":          NotImplemented, // int or int range
	"reqprocs":          Decode(safe(decode.Int)),
	"reqsockets":        WriteOnly,
	"reqthreads":        WriteOnly,
	"requeue":           Decode(safe(decode.IntBool)),
	"reservationname":   PassThrough,
	"resetaccruetime":   WriteOnly,
	"sitefactor":        Decode(safe(decode.Int)),
	"stderr":            PassThrough,
	"stdin":             PassThrough,
	"stdout":            PassThrough,
	"shared":            NotImplemented, // related to oversubscribe
	"starttime":         Decode(safe(decode.ParseTimepoint)),
	"switches":          NotImplemented,
	"wait-for-switch":   Decode(safe(decode.SecondsDuration)),
	"taskspernode":      WriteOnly,
	"threadspec":        Decode(safe(decode.Int)),
	"timelimit":         Decode(safe(decode.ParseSlurmDuration)),
	"userid":            PassThrough,
	"wckey":             PassThrough,
	"workdir":           PassThrough,
}

// NodeShow covers fields specific to `scontrol show nodes`.
var NodeShow = Table{
	"allocmem":         Decode(safe(decode.MemoryMBToBytes)),
	"cpuload":          Decode(safe(decode.Float)),
	"cpuspeclist":      NotImplemented,
	"freemem":          Decode(safe(decode.MemoryMBToBytes)),
	"lastbusytime":     Decode(safe(decode.ParseTimepoint)),
	"memspeclimit":     Decode(safe(decode.MemoryMBToBytes)),
	"realmemory":       Decode(safe(decode.MemoryMBToBytes)),
	"state":            PassThrough,
	"currentwatts":     Decode(safe(decode.NSInt)),
	"lowestjoules":     Decode(safe(decode.NSInt)),
	"consumedjoules":   Decode(safe(decode.NSInt)),
	"extsensorsjoules": Decode(safe(decode.NSInt)),
	"extsensorswatts":  Decode(safe(decode.NSInt)),
	"extsensorstemp":   Decode(safe(decode.NSInt)),
}

// NodeUpdate covers fields shared with the `scontrol update node` form.
var NodeUpdate = Table{
	"nodename":          PassThrough,
	"activefeatures":    PassThrough,
	"availablefeatures": PassThrough,
	"comment":           PassThrough,
	"cpubind":           PassThrough,
	"extra":             PassThrough,
	"gres":              Decode(strict(decode.ParseGresSpec)),
	"nodeaddr":          NotImplemented,
	"nodehostname":      PassThrough,
	"reason":            PassThrough,
	"resumeafter":       Decode(safe(decode.SecondsDuration)),
	"state":             PassThrough,
}

// PartitionUpdate covers `scontrol show partition` fields, documented under
// the update-command section.
var PartitionUpdate = Table{
	"allocnodes":           Decode(strict(decode.ParseNodeList)),
	"allowaccounts":        Decode(csl()),
	"allowgroups":          Decode(csl()),
	"allowqos":             Decode(csl()),
	"alternate":            PassThrough,
	"cpubind":              PassThrough,
	"default":              Decode(safe(decode.YesNoBool)),
	"defaulttime":          Decode(safe(decode.ParseSlurmDuration)),
	"defmempercpu":         Decode(safe(decode.UnlimitedMemoryMBToBytes)),
	"defmempernode":        Decode(safe(decode.UnlimitedMemoryMBToBytes)),
	"denyaccounts":         Decode(csl()),
	"denyqos":              Decode(csl()),
	"disablerootjobs":      Decode(safe(decode.YesNoBool)),
	"exclusiveuser":        Decode(safe(decode.YesNoBool)),
	"gracetime":            Decode(safe(decode.SecondsDuration)),
	"hidden":               Decode(safe(decode.YesNoBool)),
	"jobdefaults":          Decode(fallible(decode.CommaSeparatedKeyValueList)),
	"maxcpuspernode":       Decode(safe(decode.Int)),
	"lln":                  Decode(safe(decode.YesNoBool)),
	"maxmempercpu":         Decode(safe(decode.UnlimitedMemoryMBToBytes)),
	"maxmempernode":        Decode(safe(decode.UnlimitedMemoryMBToBytes)),
	"maxnodes":             Decode(safe(decode.Int)),
	"maxtime":              Decode(safe(decode.ParseSlurmDuration)),
	"minnodes":             Decode(safe(decode.Int)),
	"maxcpuspersocket":     Decode(safe(decode.Int)),
	"nodes":                Decode(strict(decode.ParseNodeList)),
	"oversubscribe":        PassThrough,
	"overtimelimit":        Decode(safe(decode.MinutesDuration)),
	"partitionname":        PassThrough,
	"powerdownonidle":      PassThrough,
	"preemptmode":          PassThrough,
	"priority":             Decode(safe(decode.Int)),
	"priorityjobfactor":    Decode(safe(decode.Int)),
	"prioritytier":         Decode(safe(decode.Int)),
	"qos":                  PassThrough,
	"reqresv":              Decode(safe(decode.YesNoBool)),
	"rootonly":             Decode(safe(decode.YesNoBool)),
	"shared":               PassThrough,
	"state":                PassThrough,
	"tresbillingweights":   NotImplemented, // needs a weights type holding floats
}

// QOSShow covers `sacctmgr show qos --parsable2` columns, including the
// abbreviated per-account/per-user spellings older releases emit.
var QOSShow = Table{
	"description":             PassThrough,
	"gracetime":               Decode(safe(decode.ParseSlurmDuration)),
	"grpjobs":                 Decode(safe(decode.Int)),
	"grpjobsaccrue":           Decode(safe(decode.Int)),
	"grpsubmit":               Decode(safe(decode.Int)),
	"grpsubmitjobs":           Decode(safe(decode.Int)),
	"grptres":                 Decode(fallible(decode.ParseTres)),
	"grptresmins":             Decode(fallible(decode.ParseTres)),
	"grpwall":                 Decode(safe(decode.ParseSlurmDuration)),
	"limitfactor":             Decode(safe(decode.Float)),
	"maxjobsaccruepa":         Decode(safe(decode.Int)),
	"maxjobsaccrueperaccount": Decode(safe(decode.Int)),
	"maxjobsaccruepu":         Decode(safe(decode.Int)),
	"maxjobsaccrueperuser":    Decode(safe(decode.Int)),
	"maxjobspa":               Decode(safe(decode.Int)),
	"maxjobsperaccount":       Decode(safe(decode.Int)),
	"maxjobspu":               Decode(safe(decode.Int)),
	"maxjobsperuser":          Decode(safe(decode.Int)),
	"maxtresmins":             Decode(safe(decode.MinutesDuration)),
	"maxtres":                 Decode(fallible(decode.ParseTres)),
	"maxtresperjob":           Decode(fallible(decode.ParseTres)),
	"maxtrespernode":          Decode(fallible(decode.ParseTres)),
	"maxtrespu":               Decode(fallible(decode.ParseTres)),
	"maxtresperuser":          Decode(fallible(decode.ParseTres)),
	"maxsubmitjobspa":         Decode(safe(decode.Int)),
	"maxsubmitjobsperaccount": Decode(safe(decode.Int)),
	"maxsubmitjobspu":         Decode(safe(decode.Int)),
	"maxsubmitjobsperuser":    Decode(safe(decode.Int)),
	"maxwall":                 Decode(safe(decode.ParseSlurmDuration)),
	"maxwalldurationperjob":   Decode(safe(decode.ParseSlurmDuration)),
	"minpriothreshold":        Decode(safe(decode.Int)),
	"mintres":                 Decode(fallible(decode.ParseTres)),
	"name":                    PassThrough,
	"preempt":                 Decode(csl()),
	"preemptmode":             PassThrough,
	"priority":                Decode(safe(decode.Int)),
	"usagefactor":             Decode(safe(decode.Float)),
}

// Jobs is the combined vocabulary applied to `scontrol show jobs` output.
var Jobs = Merge(JobsShow, JobsUpdate)

// Nodes is the combined vocabulary applied to `scontrol show nodes` output.
var Nodes = Merge(NodeShow, NodeUpdate)
