package options

import "testing"

func TestDefaultEnablesResourceExtraction(t *testing.T) {
	o := Default()
	if !o.ExtractResources {
		t.Fatalf("expected Default() to enable resource extraction")
	}
	if o.ErrorMode != Strict {
		t.Fatalf("expected Default() to use strict error mode")
	}
}

func TestWithLenientAndWithStrictToggleErrorMode(t *testing.T) {
	o := Default().WithLenient()
	if o.ErrorMode != Lenient {
		t.Fatalf("expected lenient mode")
	}
	o = o.WithStrict()
	if o.ErrorMode != Strict {
		t.Fatalf("expected strict mode")
	}
}

func TestWithTextOnlyAndWithStructureOnlySetExtractMode(t *testing.T) {
	o := Default().WithTextOnly()
	if o.ExtractMode != TextOnly {
		t.Fatalf("expected TextOnly extract mode")
	}
	o = Default().WithStructureOnly()
	if o.ExtractMode != StructureOnly {
		t.Fatalf("expected StructureOnly extract mode")
	}
}

func TestWithoutResourcesDisablesExtraction(t *testing.T) {
	o := Default().WithoutResources()
	if o.ExtractResources {
		t.Fatalf("expected ExtractResources to be false")
	}
}

func TestWithMemoryLimitMBConvertsToBytes(t *testing.T) {
	o := Default().WithMemoryLimitMB(8)
	if o.MemoryLimitByte != 8*1024*1024 {
		t.Fatalf("unexpected byte limit: %d", o.MemoryLimitByte)
	}
}

func TestBuilderMethodsDoNotMutateTheReceiver(t *testing.T) {
	base := Default()
	_ = base.WithLenient()
	if base.ErrorMode != Strict {
		t.Fatalf("expected the original options value to remain unchanged")
	}
}

func TestLogReturnsADiscardLoggerWhenUnset(t *testing.T) {
	o := Default()
	log := o.Log()
	if log == nil {
		t.Fatalf("expected a non-nil default logger")
	}
	// Should not panic and should silently discard output.
	log.Info("probe")
}

func TestLogReturnsTheConfiguredLogger(t *testing.T) {
	custom := Default().Log()
	o := Default().WithLogger(custom)
	if o.Log() != custom {
		t.Fatalf("expected Log() to return the configured logger instance")
	}
}
