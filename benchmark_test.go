package inverter

import (
	"context"
	"fmt"
	"testing"
)

func BenchmarkBuild_10Providers(b *testing.B) {
	benchmarkBuild(b, 10)
}

func BenchmarkBuild_100Providers(b *testing.B) {
	benchmarkBuild(b, 100)
}

func BenchmarkResolve_Value(b *testing.B) {
	tok := NewToken[*benchService]("svc")
	c := MustNew(Config{Providers: []Provider{Value(tok, &benchService{})}})
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Get(ctx, c, tok)
	}
}

func BenchmarkResolve_Singleton(b *testing.B) {
	benchmarkScope(b, Singleton)
}

func BenchmarkResolve_Scoped(b *testing.B) {
	benchmarkScope(b, Scoped)
}

func BenchmarkResolve_Transient(b *testing.B) {
	benchmarkScope(b, Transient)
}

func BenchmarkResolve_Chain10(b *testing.B) {
	benchmarkChain(b, 10)
}

func BenchmarkResolve_Chain50(b *testing.B) {
	benchmarkChain(b, 50)
}

func BenchmarkResolve_Multi10(b *testing.B) {
	tok := MustMulti(NewToken[*benchService]("plugins"))
	providers := make([]Provider, 10)
	for i := range providers {
		providers[i] = Value(tok, &benchService{id: i})
	}
	c := MustNew(Config{Providers: providers})
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = GetAll(ctx, c, tok)
	}
}

func BenchmarkResolve_ChildContainer(b *testing.B) {
	tok := NewToken[*benchService]("request")
	root := MustNew(Config{Providers: []Provider{
		Factory(tok, func(ctx context.Context, r Resolver) (*benchService, error) {
			return &benchService{}, nil
		}),
	}})
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		child := root.MustChild(Config{})
		_, _ = Get(ctx, child, tok)
	}
}

type benchService struct {
	id int
}

func benchmarkBuild(b *testing.B, count int) {
	providers := make([]Provider, count)
	for j := range providers {
		idx := j
		tok := NewToken[*benchService](fmt.Sprintf("svc_%d", j))
		providers[j] = Factory(tok, func(ctx context.Context, r Resolver) (*benchService, error) {
			return &benchService{id: idx}, nil
		})
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = New(Config{Providers: providers})
	}
}

func benchmarkScope(b *testing.B, s Scope) {
	tok := NewToken[*benchService]("svc")
	c := MustNew(Config{Providers: []Provider{
		Factory(tok, func(ctx context.Context, r Resolver) (*benchService, error) {
			return &benchService{}, nil
		}, WithScope(s)),
	}})
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Get(ctx, c, tok)
	}
}

type chainService struct {
	level int
}

func benchmarkChain(b *testing.B, depth int) {
	tokens := make([]Token[*chainService], depth)
	providers := make([]Provider, depth)
	for j := range tokens {
		tokens[j] = NewToken[*chainService](fmt.Sprintf("chain_%d", j))
	}
	for j := range tokens {
		level := j
		var opts []ProviderOption
		if j > 0 {
			opts = append(opts, Inject(tokens[j-1]))
		}
		opts = append(opts, WithScope(Transient))
		providers[j] = Factory(tokens[j], func(ctx context.Context, r Resolver) (*chainService, error) {
			return &chainService{level: level}, nil
		}, opts...)
	}
	c := MustNew(Config{Providers: providers})
	ctx := context.Background()
	last := tokens[depth-1]

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Get(ctx, c, last)
	}
}
