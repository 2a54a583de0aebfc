package server

const siteCSS = `:root {
  --bg: #0b0b14;
  --fg: #e7e7f0;
  --muted: #9a9ab0;
  --accent: #7c3aed;
  --card: #151524;
}
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", sans-serif; background: var(--bg); color: var(--fg); line-height: 1.6; }
a { color: inherit; }
main { max-width: 1040px; margin: 0 auto; padding: 0 20px 64px; }
.site-header, .site-footer { display: flex; flex-wrap: wrap; align-items: center; justify-content: space-between; gap: 16px; padding: 20px; max-width: 1040px; margin: 0 auto; }
.site-header nav a, .site-footer nav a { margin-left: 18px; text-decoration: none; color: var(--muted); }
.site-header nav a.active { color: var(--fg); border-bottom: 2px solid var(--accent); }
.brand { font-weight: 800; font-size: 1.3rem; text-decoration: none; }
.hero { padding: 72px 0 40px; }
.hero h1 { font-size: clamp(2rem, 5vw, 3.4rem); line-height: 1.1; margin: 0 0 16px; }
.lead { color: var(--muted); font-size: 1.2rem; max-width: 640px; }
.cta, .waitlist-form button { display: inline-block; margin-top: 16px; padding: 12px 22px; border-radius: 999px; border: 0; background: var(--accent); color: #fff; font-weight: 600; text-decoration: none; cursor: pointer; }
.content-section { margin: 40px 0; }
.inline-link { color: #a78bfa; text-decoration: underline; text-underline-offset: 3px; }
.tokenomics { display: grid; grid-template-columns: minmax(200px, 320px) 1fr; gap: 40px; align-items: center; }
.tokenomics svg circle { transition: stroke-width .2s; }
.tokenomics svg circle:hover { stroke-width: 36; }
.legend { list-style: none; padding: 0; }
.legend li { margin: 8px 0; }
.swatch { display: inline-block; width: 12px; height: 12px; border-radius: 3px; margin-right: 10px; }
.progress { height: 14px; background: var(--card); border-radius: 999px; overflow: hidden; }
.progress-bar { height: 100%; background: linear-gradient(90deg, #7c3aed, #2563eb); }
.tiers { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 16px; }
.tier { background: var(--card); border-radius: 16px; padding: 20px; }
.tier.featured { outline: 2px solid var(--accent); }
.comparison table { width: 100%; border-collapse: collapse; }
.comparison th, .comparison td { padding: 12px; border-bottom: 1px solid #26263a; text-align: left; }
.faq-search input, .waitlist-form input { width: 100%; max-width: 420px; padding: 12px 16px; border-radius: 12px; border: 1px solid #26263a; background: var(--card); color: var(--fg); }
.faq-item { background: var(--card); border-radius: 12px; padding: 16px 20px; margin: 12px 0; }
.faq-item summary { cursor: pointer; font-weight: 600; }
.carousel { display: flex; gap: 16px; overflow-x: auto; scroll-snap-type: x mandatory; padding-bottom: 12px; }
.testimonial { flex: 0 0 min(360px, 85%); scroll-snap-align: start; margin: 0; background: var(--card); border-radius: 16px; padding: 24px; }
.testimonial figcaption { color: var(--muted); margin-top: 12px; }
.roadmap ol { list-style: none; padding: 0; border-left: 2px solid #26263a; }
.roadmap li { padding: 8px 0 8px 20px; }
.roadmap li.done .quarter { color: #34d399; }
.quarter { font-weight: 700; margin-right: 8px; }
.waitlist-status { min-height: 1.5em; color: var(--muted); }
@media (max-width: 720px) { .tokenomics { grid-template-columns: 1fr; } }
`

const siteJS = `(function () {
  document.querySelectorAll('.waitlist-form').forEach(function (form) {
    var status = form.querySelector('.waitlist-status');
    form.addEventListener('submit', function (ev) {
      ev.preventDefault();
      var email = (form.querySelector('input[name=email]') || {}).value || '';
      status.textContent = 'Submitting...';
      fetch(form.dataset.endpoint, {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ email: email }),
        cache: 'no-store',
      })
        .then(function (res) {
          return res.json().then(function (body) { return { ok: res.ok, body: body }; });
        })
        .then(function (r) {
          status.textContent = r.ok ? r.body.message : (r.body.error || 'Something went wrong');
          if (r.ok) form.reset();
        })
        .catch(function () { status.textContent = 'Something went wrong'; });
    });
  });

  document.querySelectorAll('.carousel').forEach(function (carousel) {
    var timer = setInterval(function () {
      var max = carousel.scrollWidth - carousel.clientWidth;
      var next = carousel.scrollLeft + carousel.clientWidth * 0.85;
      carousel.scrollTo({ left: next >= max + 4 ? 0 : next, behavior: 'smooth' });
    }, 6000);
    carousel.addEventListener('pointerdown', function () { clearInterval(timer); }, { once: true });
  });
})();
`
